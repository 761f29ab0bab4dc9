package handler

import (
	"context"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
)

type profileService interface {
	ResolveTutor(ctx context.Context, authID string) (*models.Tutor, error)
	ResolveTutee(ctx context.Context, authID string) (*models.Tutee, error)
	ResolveAdmin(ctx context.Context, authID string) (*models.Admin, error)
	ListTutors(ctx context.Context) ([]models.Tutor, error)
	SetTutorStatus(ctx context.Context, tutorID string, status models.TutorStatus) error
}

type opportunityService interface {
	Create(ctx context.Context, tuteeID string, req service.CreateOpportunityRequest) (*models.Opportunity, error)
	ListOpen(ctx context.Context) ([]models.OpportunityListing, error)
	ListForTutee(ctx context.Context, tuteeID string) ([]models.Opportunity, error)
	ListAll(ctx context.Context, limit int) ([]models.Opportunity, error)
	Cancel(ctx context.Context, id, tuteeID string) error
}

type lifecycleService interface {
	Accept(ctx context.Context, opportunityID string, tutor *models.Tutor) (*models.Job, []string, error)
	SubmitAvailability(ctx context.Context, jobID, tuteeID string, req service.AvailabilityRequest) (*models.Job, []string, error)
	Schedule(ctx context.Context, jobID, tutorID string, req service.ScheduleRequest) (*models.Job, []string, error)
	SubmitRecording(ctx context.Context, jobID, tutorID string, req service.RecordingRequest) (*models.SessionRecording, error)
	Complete(ctx context.Context, jobID, tutorID string) (*models.AwaitingVerificationJob, []string, error)
	Cancel(ctx context.Context, jobID, actorID string, actorRole models.UserRole) (*models.Opportunity, []string, error)
	GetJobForTutor(ctx context.Context, jobID, tutorID string) (*models.Job, error)
	GetJobForTutee(ctx context.Context, jobID, tuteeID string) (*models.Job, error)
	ListJobsForTutor(ctx context.Context, tutorID string) ([]models.Job, error)
	ListJobsForTutee(ctx context.Context, tuteeID string) ([]models.Job, error)
	ListAllJobs(ctx context.Context, limit int) ([]models.Job, error)
}

type verificationService interface {
	ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error)
	ListAwaitingForTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error)
	Verify(ctx context.Context, awaitingID, adminID string, req service.VerifyRequest) (*models.PastJob, []string, error)
	ListPast(ctx context.Context, limit int) ([]models.PastJob, error)
	ListPastForTutor(ctx context.Context, tutorID string) ([]models.PastJob, error)
}

type approvalService interface {
	ListForTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error)
	RequestCertification(ctx context.Context, tutor *models.Tutor, input service.CertificationRequestInput) (*models.CertificationRequest, error)
	ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error)
	ResolveCertification(ctx context.Context, requestID, adminID string, approve bool) (*models.SubjectApproval, []string, error)
	GrantApproval(ctx context.Context, tutorID, adminID string, subject models.SubjectDescriptor) (*models.SubjectApproval, error)
}

type reportService interface {
	VolunteerHours(ctx context.Context, format service.ReportFormat) (*service.ReportFile, error)
	VerifiedSessions(ctx context.Context, format service.ReportFormat) (*service.ReportFile, error)
}
