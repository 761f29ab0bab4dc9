package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/middleware"
	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

func tutorContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "auth-2", Role: models.RoleTutor})
	return c, w
}

func newTutorHandler(profiles *profileServiceMock, opportunities *opportunityServiceMock, lifecycle *lifecycleServiceMock, verification *verificationServiceMock, approvals *approvalServiceMock) *TutorHandler {
	return NewTutorHandler(profiles, opportunities, lifecycle, verification, approvals, service.NewMetricsService())
}

func TestTutorHandlerAcceptOpportunity(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	lifecycle := &lifecycleServiceMock{job: &models.Job{ID: "job-1", Status: models.JobPendingTuteeScheduling}}
	h := newTutorHandler(profiles, &opportunityServiceMock{}, lifecycle, &verificationServiceMock{}, &approvalServiceMock{})

	c, w := tutorContext(t, http.MethodPost, "/tutor/opportunities/opp-1/accept", nil)
	c.Params = gin.Params{{Key: "id", Value: "opp-1"}}

	h.AcceptOpportunity(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, lifecycle.acceptCalled)
}

func TestTutorHandlerAcceptClaimedConflict(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	lifecycle := &lifecycleServiceMock{err: appErrors.ErrOpportunityClaimed}
	h := newTutorHandler(profiles, &opportunityServiceMock{}, lifecycle, &verificationServiceMock{}, &approvalServiceMock{})

	c, w := tutorContext(t, http.MethodPost, "/tutor/opportunities/opp-1/accept", nil)
	c.Params = gin.Params{{Key: "id", Value: "opp-1"}}

	h.AcceptOpportunity(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "OPPORTUNITY_ALREADY_CLAIMED", envelope.Error.Code)
}

func TestTutorHandlerScheduleSession(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	lifecycle := &lifecycleServiceMock{job: &models.Job{ID: "job-1", Status: models.JobScheduled}}
	h := newTutorHandler(profiles, &opportunityServiceMock{}, lifecycle, &verificationServiceMock{}, &approvalServiceMock{})

	payload, _ := json.Marshal(service.ScheduleRequest{
		ScheduledTime:   time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})
	c, w := tutorContext(t, http.MethodPut, "/tutor/jobs/job-1/schedule", payload)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	h.ScheduleSession(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, lifecycle.scheduleCalled)
	assert.Equal(t, 90, lifecycle.lastScheduled.DurationMinutes)
}

func TestTutorHandlerCompleteRequiresRecording(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	lifecycle := &lifecycleServiceMock{err: appErrors.ErrRecordingRequired}
	h := newTutorHandler(profiles, &opportunityServiceMock{}, lifecycle, &verificationServiceMock{}, &approvalServiceMock{})

	c, w := tutorContext(t, http.MethodPost, "/tutor/jobs/job-1/complete", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	h.CompleteJob(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTutorHandlerListOpenOpportunities(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	opportunities := &opportunityServiceMock{listings: []models.OpportunityListing{{Opportunity: models.Opportunity{ID: "opp-1"}}}}
	h := newTutorHandler(profiles, opportunities, &lifecycleServiceMock{}, &verificationServiceMock{}, &approvalServiceMock{})

	c, w := tutorContext(t, http.MethodGet, "/tutor/opportunities", nil)

	h.ListOpenOpportunities(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "opp-1")
}

func TestTutorHandlerRequestCertificationInvalidBody(t *testing.T) {
	profiles := &profileServiceMock{tutor: &models.Tutor{ID: "tutor-1", Status: models.TutorActive}}
	h := newTutorHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, &verificationServiceMock{}, &approvalServiceMock{})

	c, w := tutorContext(t, http.MethodPost, "/tutor/certifications", []byte(`{"subject_name":`))

	h.RequestCertification(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
