package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
	"github.com/peerlearn/tutoring-api/pkg/response"
)

// TutorHandler exposes the tutor-facing surface: browsing and accepting
// opportunities, scheduling, recordings, completion and certification.
type TutorHandler struct {
	profiles      profileService
	opportunities opportunityService
	lifecycle     lifecycleService
	verification  verificationService
	approvals     approvalService
	metrics       *service.MetricsService
}

// NewTutorHandler constructs TutorHandler.
func NewTutorHandler(
	profiles profileService,
	opportunities opportunityService,
	lifecycle lifecycleService,
	verification verificationService,
	approvals approvalService,
	metrics *service.MetricsService,
) *TutorHandler {
	return &TutorHandler{
		profiles:      profiles,
		opportunities: opportunities,
		lifecycle:     lifecycle,
		verification:  verification,
		approvals:     approvals,
		metrics:       metrics,
	}
}

func (h *TutorHandler) currentTutor(c *gin.Context) (*models.Tutor, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	tutor, err := h.profiles.ResolveTutor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return tutor, true
}

// ListOpenOpportunities godoc
// @Summary Browse open tutoring requests
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/opportunities [get]
func (h *TutorHandler) ListOpenOpportunities(c *gin.Context) {
	if _, ok := h.currentTutor(c); !ok {
		return
	}
	listings, err := h.opportunities.ListOpen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, listings, nil)
}

// AcceptOpportunity godoc
// @Summary Accept an open request
// @Tags Tutor
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /tutor/opportunities/{id}/accept [post]
func (h *TutorHandler) AcceptOpportunity(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	job, warnings, err := h.lifecycle.Accept(c.Request.Context(), c.Param("id"), tutor)
	if h.metrics != nil {
		h.metrics.ObserveTransition("accept", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job, warningsMeta(warnings))
}

// ListJobs godoc
// @Summary List the tutor's active pairings
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/jobs [get]
func (h *TutorHandler) ListJobs(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	jobs, err := h.lifecycle.ListJobsForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// GetJob godoc
// @Summary Fetch one of the tutor's pairings
// @Tags Tutor
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /tutor/jobs/{id} [get]
func (h *TutorHandler) GetJob(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	job, err := h.lifecycle.GetJobForTutor(c.Request.Context(), c.Param("id"), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// ScheduleSession godoc
// @Summary Schedule a session inside the tutee's availability
// @Tags Tutor
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body service.ScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /tutor/jobs/{id}/schedule [put]
func (h *TutorHandler) ScheduleSession(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, warnings, err := h.lifecycle.Schedule(c.Request.Context(), c.Param("id"), tutor.ID, req)
	if h.metrics != nil {
		h.metrics.ObserveTransition("schedule", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil, warningsMeta(warnings))
}

// SubmitRecording godoc
// @Summary Attach a session recording link
// @Tags Tutor
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body service.RecordingRequest true "Recording payload"
// @Success 200 {object} response.Envelope
// @Router /tutor/jobs/{id}/recording [put]
func (h *TutorHandler) SubmitRecording(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	var req service.RecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rec, err := h.lifecycle.SubmitRecording(c.Request.Context(), c.Param("id"), tutor.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rec, nil)
}

// CompleteJob godoc
// @Summary Mark a session complete and queue it for verification
// @Tags Tutor
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /tutor/jobs/{id}/complete [post]
func (h *TutorHandler) CompleteJob(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	awaiting, warnings, err := h.lifecycle.Complete(c.Request.Context(), c.Param("id"), tutor.ID)
	if h.metrics != nil {
		h.metrics.ObserveTransition("complete", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, awaiting, nil, warningsMeta(warnings))
}

// CancelJob godoc
// @Summary Cancel a pairing and reopen the request
// @Tags Tutor
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /tutor/jobs/{id} [delete]
func (h *TutorHandler) CancelJob(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	opp, warnings, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"), tutor.ID, models.RoleTutor)
	if h.metrics != nil {
		h.metrics.ObserveTransition("cancel", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp, nil, warningsMeta(warnings))
}

// ListAwaitingVerification godoc
// @Summary List the tutor's sessions pending verification
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/verifications [get]
func (h *TutorHandler) ListAwaitingVerification(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	queue, err := h.verification.ListAwaitingForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, queue, nil)
}

// ListPastJobs godoc
// @Summary List the tutor's verified session history
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/history [get]
func (h *TutorHandler) ListPastJobs(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	past, err := h.verification.ListPastForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, past, nil)
}

// ListApprovals godoc
// @Summary List the tutor's subject approvals
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/approvals [get]
func (h *TutorHandler) ListApprovals(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	approvals, err := h.approvals.ListForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, approvals, nil)
}

// RequestCertification godoc
// @Summary Request certification for a subject
// @Tags Tutor
// @Accept json
// @Produce json
// @Param payload body service.CertificationRequestInput true "Certification payload"
// @Success 201 {object} response.Envelope
// @Router /tutor/certifications [post]
func (h *TutorHandler) RequestCertification(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	var req service.CertificationRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.approvals.RequestCertification(c.Request.Context(), tutor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Profile godoc
// @Summary Show the tutor's own profile and volunteer hours
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/profile [get]
func (h *TutorHandler) Profile(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, tutor, nil)
}

type tutorDashboard struct {
	Profile   *models.Tutor            `json:"profile"`
	Jobs      []models.Job             `json:"jobs"`
	Approvals []models.SubjectApproval `json:"approvals"`
}

// Dashboard godoc
// @Summary Tutor dashboard: profile, active pairings and approvals
// @Tags Tutor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutor/dashboard [get]
func (h *TutorHandler) Dashboard(c *gin.Context) {
	tutor, ok := h.currentTutor(c)
	if !ok {
		return
	}
	jobs, err := h.lifecycle.ListJobsForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	approvals, err := h.approvals.ListForTutor(c.Request.Context(), tutor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutorDashboard{Profile: tutor, Jobs: jobs, Approvals: approvals}, nil)
}
