package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/middleware"
	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

func adminContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "auth-3", Role: models.RoleAdmin})
	return c, w
}

func newAdminHandler(profiles *profileServiceMock, opportunities *opportunityServiceMock, lifecycle *lifecycleServiceMock, verification *verificationServiceMock, approvals *approvalServiceMock, reports *reportServiceMock) *AdminHandler {
	return NewAdminHandler(profiles, opportunities, lifecycle, verification, approvals, reports, service.NewMetricsService())
}

func TestAdminHandlerVerifyJobEmptyBody(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	verification := &verificationServiceMock{past: &models.PastJob{ID: "past-1"}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, verification, &approvalServiceMock{}, &reportServiceMock{})

	c, w := adminContext(t, http.MethodPost, "/admin/verifications/await-1/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: "await-1"}}

	h.VerifyJob(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, verification.verifyCalled)
	assert.Nil(t, verification.lastRequest.AwardedHours)
}

func TestAdminHandlerVerifyJobOverrideHours(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	verification := &verificationServiceMock{past: &models.PastJob{ID: "past-1"}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, verification, &approvalServiceMock{}, &reportServiceMock{})

	c, w := adminContext(t, http.MethodPost, "/admin/verifications/await-1/verify", []byte(`{"awarded_hours": 2.5}`))
	c.Params = gin.Params{{Key: "id", Value: "await-1"}}

	h.VerifyJob(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, verification.lastRequest.AwardedHours)
	assert.InDelta(t, 2.5, *verification.lastRequest.AwardedHours, 0.001)
}

func TestAdminHandlerResolveCertification(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	approvals := &approvalServiceMock{approval: &models.SubjectApproval{ID: "appr-1"}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, &verificationServiceMock{}, approvals, &reportServiceMock{})

	c, w := adminContext(t, http.MethodPost, "/admin/certifications/req-1/resolve", []byte(`{"approve": true}`))
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}

	h.ResolveCertification(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, approvals.resolveCalled)
	assert.True(t, approvals.lastApprove)
}

func TestAdminHandlerSetTutorStatus(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, &verificationServiceMock{}, &approvalServiceMock{}, &reportServiceMock{})

	c, w := adminContext(t, http.MethodPut, "/admin/tutors/tutor-1/status", []byte(`{"status": "suspended"}`))
	c.Params = gin.Params{{Key: "id", Value: "tutor-1"}}

	h.SetTutorStatus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, profiles.statusCalled)
	assert.Equal(t, models.TutorSuspended, profiles.lastStatus)
}

func TestAdminHandlerCancelJobActsAsAdmin(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	lifecycle := &lifecycleServiceMock{recreated: &models.Opportunity{ID: "opp-9"}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, lifecycle, &verificationServiceMock{}, &approvalServiceMock{}, &reportServiceMock{})

	c, w := adminContext(t, http.MethodDelete, "/admin/jobs/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}

	h.CancelJob(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, lifecycle.lastActorRole)
}

func TestAdminHandlerVolunteerHoursReport(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	reports := &reportServiceMock{file: &service.ReportFile{
		Filename:    "volunteer_hours.csv",
		ContentType: "text/csv",
		Data:        []byte("Tutor,Email,Status,Volunteer Hours\n"),
	}}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, &verificationServiceMock{}, &approvalServiceMock{}, reports)

	c, w := adminContext(t, http.MethodGet, "/admin/reports/volunteer-hours?format=csv", nil)

	h.VolunteerHoursReport(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "volunteer_hours.csv")
}

func TestAdminHandlerVerifyJobNotFound(t *testing.T) {
	profiles := &profileServiceMock{admin: &models.Admin{ID: "admin-1"}}
	verification := &verificationServiceMock{err: appErrors.ErrNotFound}
	h := newAdminHandler(profiles, &opportunityServiceMock{}, &lifecycleServiceMock{}, verification, &approvalServiceMock{}, &reportServiceMock{})

	c, w := adminContext(t, http.MethodPost, "/admin/verifications/missing/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.VerifyJob(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}
