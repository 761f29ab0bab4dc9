package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
	"github.com/peerlearn/tutoring-api/pkg/response"
)

// TuteeHandler exposes the tutee-facing surface: opening requests,
// submitting availability and cancelling.
type TuteeHandler struct {
	profiles      profileService
	opportunities opportunityService
	lifecycle     lifecycleService
}

// NewTuteeHandler constructs TuteeHandler.
func NewTuteeHandler(profiles profileService, opportunities opportunityService, lifecycle lifecycleService) *TuteeHandler {
	return &TuteeHandler{profiles: profiles, opportunities: opportunities, lifecycle: lifecycle}
}

func (h *TuteeHandler) currentTutee(c *gin.Context) (*models.Tutee, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	tutee, err := h.profiles.ResolveTutee(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return tutee, true
}

type tuteeDashboard struct {
	Profile       *models.Tutee        `json:"profile"`
	Opportunities []models.Opportunity `json:"opportunities"`
	Jobs          []models.Job         `json:"jobs"`
}

// Dashboard godoc
// @Summary Tutee dashboard: profile, own requests and pairings
// @Tags Tutee
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutee/dashboard [get]
func (h *TuteeHandler) Dashboard(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	opps, err := h.opportunities.ListForTutee(c.Request.Context(), tutee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	jobs, err := h.lifecycle.ListJobsForTutee(c.Request.Context(), tutee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tuteeDashboard{Profile: tutee, Opportunities: opps, Jobs: jobs}, nil)
}

// CreateOpportunity godoc
// @Summary Open a new tutoring request
// @Tags Tutee
// @Accept json
// @Produce json
// @Param payload body service.CreateOpportunityRequest true "Opportunity payload"
// @Success 201 {object} response.Envelope
// @Router /tutee/opportunities [post]
func (h *TuteeHandler) CreateOpportunity(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	var req service.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	opp, err := h.opportunities.Create(c.Request.Context(), tutee.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, opp)
}

// ListOpportunities godoc
// @Summary List the tutee's own requests
// @Tags Tutee
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutee/opportunities [get]
func (h *TuteeHandler) ListOpportunities(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	opps, err := h.opportunities.ListForTutee(c.Request.Context(), tutee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opps, nil)
}

// CancelOpportunity godoc
// @Summary Withdraw an open request
// @Tags Tutee
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 204 "withdrawn"
// @Router /tutee/opportunities/{id} [delete]
func (h *TuteeHandler) CancelOpportunity(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	if err := h.opportunities.Cancel(c.Request.Context(), c.Param("id"), tutee.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListJobs godoc
// @Summary List the tutee's active pairings
// @Tags Tutee
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tutee/jobs [get]
func (h *TuteeHandler) ListJobs(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	jobs, err := h.lifecycle.ListJobsForTutee(c.Request.Context(), tutee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// GetJob godoc
// @Summary Fetch one of the tutee's pairings
// @Tags Tutee
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /tutee/jobs/{id} [get]
func (h *TuteeHandler) GetJob(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	job, err := h.lifecycle.GetJobForTutee(c.Request.Context(), c.Param("id"), tutee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// SubmitAvailability godoc
// @Summary Submit availability for a pairing
// @Tags Tutee
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body service.AvailabilityRequest true "Availability payload"
// @Success 200 {object} response.Envelope
// @Router /tutee/jobs/{id}/availability [put]
func (h *TuteeHandler) SubmitAvailability(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	var req service.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, warnings, err := h.lifecycle.SubmitAvailability(c.Request.Context(), c.Param("id"), tutee.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil, warningsMeta(warnings))
}

// CancelJob godoc
// @Summary Cancel a pairing and reopen the request
// @Tags Tutee
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /tutee/jobs/{id} [delete]
func (h *TuteeHandler) CancelJob(c *gin.Context) {
	tutee, ok := h.currentTutee(c)
	if !ok {
		return
	}
	opp, warnings, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"), tutee.ID, models.RoleTutee)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp, nil, warningsMeta(warnings))
}
