package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
	"github.com/peerlearn/tutoring-api/pkg/response"
)

// AdminHandler exposes the administrative surface: verification,
// certification decisions, tutor management and reports.
type AdminHandler struct {
	profiles      profileService
	opportunities opportunityService
	lifecycle     lifecycleService
	verification  verificationService
	approvals     approvalService
	reports       reportService
	metrics       *service.MetricsService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(
	profiles profileService,
	opportunities opportunityService,
	lifecycle lifecycleService,
	verification verificationService,
	approvals approvalService,
	reports reportService,
	metrics *service.MetricsService,
) *AdminHandler {
	return &AdminHandler{
		profiles:      profiles,
		opportunities: opportunities,
		lifecycle:     lifecycle,
		verification:  verification,
		approvals:     approvals,
		reports:       reports,
		metrics:       metrics,
	}
}

func (h *AdminHandler) currentAdmin(c *gin.Context) (*models.Admin, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	admin, err := h.profiles.ResolveAdmin(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return admin, true
}

func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		return 50
	}
	return limit
}

// ListVerificationQueue godoc
// @Summary List sessions awaiting verification
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/verifications [get]
func (h *AdminHandler) ListVerificationQueue(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	queue, err := h.verification.ListAwaiting(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, queue, nil)
}

// VerifyJob godoc
// @Summary Verify a completed session and credit volunteer hours
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Awaiting verification ID"
// @Param payload body service.VerifyRequest false "Optional hours override"
// @Success 200 {object} response.Envelope
// @Router /admin/verifications/{id}/verify [post]
func (h *AdminHandler) VerifyJob(c *gin.Context) {
	admin, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	// The body is optional; an empty body means default hours.
	var req service.VerifyRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	past, warnings, err := h.verification.Verify(c.Request.Context(), c.Param("id"), admin.ID, req)
	if h.metrics != nil {
		h.metrics.ObserveTransition("verify", err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, past, nil, warningsMeta(warnings))
}

// ListPastJobs godoc
// @Summary List the verified session archive
// @Tags Admin
// @Produce json
// @Param limit query int false "Row limit"
// @Success 200 {object} response.Envelope
// @Router /admin/history [get]
func (h *AdminHandler) ListPastJobs(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	past, err := h.verification.ListPast(c.Request.Context(), limitQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, past, nil)
}

// ListOpportunities godoc
// @Summary List recent opportunities across all tutees
// @Tags Admin
// @Produce json
// @Param limit query int false "Row limit"
// @Success 200 {object} response.Envelope
// @Router /admin/opportunities [get]
func (h *AdminHandler) ListOpportunities(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	opps, err := h.opportunities.ListAll(c.Request.Context(), limitQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opps, nil)
}

// ListJobs godoc
// @Summary List recent active jobs across all pairings
// @Tags Admin
// @Produce json
// @Param limit query int false "Row limit"
// @Success 200 {object} response.Envelope
// @Router /admin/jobs [get]
func (h *AdminHandler) ListJobs(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	jobs, err := h.lifecycle.ListAllJobs(c.Request.Context(), limitQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// CancelJob godoc
// @Summary Cancel any pairing and reopen the request
// @Tags Admin
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /admin/jobs/{id} [delete]
func (h *AdminHandler) CancelJob(c *gin.Context) {
	admin, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	opp, warnings, err := h.lifecycle.Cancel(c.Request.Context(), c.Param("id"), admin.ID, models.RoleAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, opp, nil, warningsMeta(warnings))
}

// ListTutors godoc
// @Summary List tutor profiles
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/tutors [get]
func (h *AdminHandler) ListTutors(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	tutors, err := h.profiles.ListTutors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors, nil)
}

// TutorStatusRequest updates a tutor's standing.
type TutorStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetTutorStatus godoc
// @Summary Change a tutor's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Tutor ID"
// @Param payload body TutorStatusRequest true "Status payload"
// @Success 204 "updated"
// @Router /admin/tutors/{id}/status [put]
func (h *AdminHandler) SetTutorStatus(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	var req TutorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.profiles.SetTutorStatus(c.Request.Context(), c.Param("id"), models.TutorStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCertificationRequests godoc
// @Summary List pending certification requests
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/certifications [get]
func (h *AdminHandler) ListCertificationRequests(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	reqs, err := h.approvals.ListCertificationRequests(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reqs, nil)
}

// CertificationDecisionRequest resolves a certification request.
type CertificationDecisionRequest struct {
	Approve bool `json:"approve"`
}

// ResolveCertification godoc
// @Summary Approve or reject a certification request
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Certification request ID"
// @Param payload body CertificationDecisionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /admin/certifications/{id}/resolve [post]
func (h *AdminHandler) ResolveCertification(c *gin.Context) {
	admin, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	var req CertificationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	approval, warnings, err := h.approvals.ResolveCertification(c.Request.Context(), c.Param("id"), admin.ID, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, approval, nil, warningsMeta(warnings))
}

// ApproveCertification resolves a certification request as approved. Used
// by the bodyless alias route.
func (h *AdminHandler) ApproveCertification(c *gin.Context) {
	h.resolveCertificationAs(c, true)
}

// RejectCertification resolves a certification request as rejected. Used
// by the bodyless alias route.
func (h *AdminHandler) RejectCertification(c *gin.Context) {
	h.resolveCertificationAs(c, false)
}

func (h *AdminHandler) resolveCertificationAs(c *gin.Context, approve bool) {
	admin, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	approval, warnings, err := h.approvals.ResolveCertification(c.Request.Context(), c.Param("id"), admin.ID, approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, approval, nil, warningsMeta(warnings))
}

// GrantApprovalRequest approves a subject for a tutor directly.
type GrantApprovalRequest struct {
	SubjectName  string `json:"subject_name" binding:"required"`
	SubjectType  string `json:"subject_type" binding:"required"`
	SubjectGrade string `json:"subject_grade" binding:"required"`
}

// GrantApproval godoc
// @Summary Approve a subject for a tutor without a request
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Tutor ID"
// @Param payload body GrantApprovalRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /admin/tutors/{id}/approvals [post]
func (h *AdminHandler) GrantApproval(c *gin.Context) {
	admin, ok := h.currentAdmin(c)
	if !ok {
		return
	}
	var req GrantApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject := models.SubjectDescriptor{Name: req.SubjectName, Type: req.SubjectType, Grade: req.SubjectGrade}
	approval, err := h.approvals.GrantApproval(c.Request.Context(), c.Param("id"), admin.ID, subject)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, approval)
}

// VolunteerHoursReport godoc
// @Summary Download the volunteer hours report
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/reports/volunteer-hours [get]
func (h *AdminHandler) VolunteerHoursReport(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	file, err := h.reports.VolunteerHours(c.Request.Context(), service.ReportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// VerifiedSessionsReport godoc
// @Summary Download the verified sessions report
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /admin/reports/verified-sessions [get]
func (h *AdminHandler) VerifiedSessionsReport(c *gin.Context) {
	if _, ok := h.currentAdmin(c); !ok {
		return
	}
	file, err := h.reports.VerifiedSessions(c.Request.Context(), service.ReportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
