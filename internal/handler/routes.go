package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peerlearn/tutoring-api/internal/middleware"
	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
)

// Handlers bundles the API's handler set for route registration.
type Handlers struct {
	Tutee   *TuteeHandler
	Tutor   *TutorHandler
	Admin   *AdminHandler
	Metrics *MetricsHandler
	Auth    *service.AuthService
}

// RegisterRoutes wires all endpoints onto the router under the given
// prefix. Role gates are enforced per group; handlers additionally
// resolve the caller's profile.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.Use(middleware.JWT(h.Auth))

	tutee := api.Group("/tutee")
	tutee.Use(middleware.RBAC(models.RoleTutee))
	{
		tutee.GET("/dashboard", h.Tutee.Dashboard)
		tutee.POST("/opportunities", h.Tutee.CreateOpportunity)
		tutee.GET("/opportunities", h.Tutee.ListOpportunities)
		tutee.DELETE("/opportunities/:id", h.Tutee.CancelOpportunity)
		tutee.GET("/jobs", h.Tutee.ListJobs)
		tutee.GET("/jobs/:id", h.Tutee.GetJob)
		tutee.PUT("/jobs/:id/availability", h.Tutee.SubmitAvailability)
		tutee.DELETE("/jobs/:id", h.Tutee.CancelJob)
		// Aliases kept for older clients.
		tutee.POST("/jobs/:id/availability", h.Tutee.SubmitAvailability)
		tutee.POST("/jobs/:id/cancel", h.Tutee.CancelJob)
	}

	tutor := api.Group("/tutor")
	tutor.Use(middleware.RBAC(models.RoleTutor))
	{
		tutor.GET("/profile", h.Tutor.Profile)
		tutor.GET("/dashboard", h.Tutor.Dashboard)
		tutor.GET("/opportunities", h.Tutor.ListOpenOpportunities)
		tutor.POST("/opportunities/:id/accept", h.Tutor.AcceptOpportunity)
		// Legacy alias kept for older clients.
		tutor.POST("/opportunities/:id/apply", h.Tutor.AcceptOpportunity)
		tutor.GET("/jobs", h.Tutor.ListJobs)
		tutor.GET("/jobs/:id", h.Tutor.GetJob)
		tutor.PUT("/jobs/:id/schedule", h.Tutor.ScheduleSession)
		tutor.PUT("/jobs/:id/recording", h.Tutor.SubmitRecording)
		tutor.POST("/jobs/:id/complete", h.Tutor.CompleteJob)
		tutor.DELETE("/jobs/:id", h.Tutor.CancelJob)
		tutor.GET("/verifications", h.Tutor.ListAwaitingVerification)
		tutor.GET("/history", h.Tutor.ListPastJobs)
		tutor.GET("/approvals", h.Tutor.ListApprovals)
		tutor.POST("/certifications", h.Tutor.RequestCertification)
		// Aliases kept for older clients.
		tutor.POST("/jobs/:id/schedule", h.Tutor.ScheduleSession)
		tutor.POST("/jobs/:id/recording-link", h.Tutor.SubmitRecording)
		tutor.POST("/jobs/:id/cancel", h.Tutor.CancelJob)
		tutor.POST("/certification-requests", h.Tutor.RequestCertification)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RBAC(models.RoleAdmin))
	{
		admin.GET("/verifications", h.Admin.ListVerificationQueue)
		admin.POST("/verifications/:id/verify", h.Admin.VerifyJob)
		admin.GET("/history", h.Admin.ListPastJobs)
		admin.GET("/opportunities", h.Admin.ListOpportunities)
		admin.GET("/jobs", h.Admin.ListJobs)
		admin.DELETE("/jobs/:id", h.Admin.CancelJob)
		admin.GET("/tutors", h.Admin.ListTutors)
		admin.PUT("/tutors/:id/status", h.Admin.SetTutorStatus)
		admin.POST("/tutors/:id/approvals", h.Admin.GrantApproval)
		admin.GET("/certifications", h.Admin.ListCertificationRequests)
		admin.POST("/certifications/:id/resolve", h.Admin.ResolveCertification)
		admin.GET("/reports/volunteer-hours", h.Admin.VolunteerHoursReport)
		admin.GET("/reports/verified-sessions", h.Admin.VerifiedSessionsReport)
		// Aliases kept for older clients.
		admin.GET("/awaiting-verification", h.Admin.ListVerificationQueue)
		admin.POST("/awaiting-verification/:id/verify", h.Admin.VerifyJob)
		admin.POST("/certification-requests/:id/approve", h.Admin.ApproveCertification)
		admin.DELETE("/certification-requests/:id", h.Admin.RejectCertification)
	}
}
