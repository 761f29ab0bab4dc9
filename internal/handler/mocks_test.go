package handler

import (
	"context"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/internal/service"
)

type profileServiceMock struct {
	tutor  *models.Tutor
	tutee  *models.Tutee
	admin  *models.Admin
	tutors []models.Tutor
	err    error

	statusCalled bool
	lastStatus   models.TutorStatus
}

func (m *profileServiceMock) ResolveTutor(ctx context.Context, authID string) (*models.Tutor, error) {
	return m.tutor, m.err
}

func (m *profileServiceMock) ResolveTutee(ctx context.Context, authID string) (*models.Tutee, error) {
	return m.tutee, m.err
}

func (m *profileServiceMock) ResolveAdmin(ctx context.Context, authID string) (*models.Admin, error) {
	return m.admin, m.err
}

func (m *profileServiceMock) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	return m.tutors, m.err
}

func (m *profileServiceMock) SetTutorStatus(ctx context.Context, tutorID string, status models.TutorStatus) error {
	m.statusCalled = true
	m.lastStatus = status
	return m.err
}

type opportunityServiceMock struct {
	opportunity *models.Opportunity
	listings    []models.OpportunityListing
	list        []models.Opportunity
	err         error

	createCalled bool
	cancelCalled bool
	lastTuteeID  string
}

func (m *opportunityServiceMock) Create(ctx context.Context, tuteeID string, req service.CreateOpportunityRequest) (*models.Opportunity, error) {
	m.createCalled = true
	m.lastTuteeID = tuteeID
	return m.opportunity, m.err
}

func (m *opportunityServiceMock) ListOpen(ctx context.Context) ([]models.OpportunityListing, error) {
	return m.listings, m.err
}

func (m *opportunityServiceMock) ListForTutee(ctx context.Context, tuteeID string) ([]models.Opportunity, error) {
	return m.list, m.err
}

func (m *opportunityServiceMock) ListAll(ctx context.Context, limit int) ([]models.Opportunity, error) {
	return m.list, m.err
}

func (m *opportunityServiceMock) Cancel(ctx context.Context, id, tuteeID string) error {
	m.cancelCalled = true
	return m.err
}

type lifecycleServiceMock struct {
	job       *models.Job
	jobs      []models.Job
	recording *models.SessionRecording
	awaiting  *models.AwaitingVerificationJob
	recreated *models.Opportunity
	warnings  []string
	err       error

	acceptCalled   bool
	cancelCalled   bool
	lastActorRole  models.UserRole
	lastActorID    string
	lastScheduled  service.ScheduleRequest
	scheduleCalled bool
}

func (m *lifecycleServiceMock) Accept(ctx context.Context, opportunityID string, tutor *models.Tutor) (*models.Job, []string, error) {
	m.acceptCalled = true
	return m.job, m.warnings, m.err
}

func (m *lifecycleServiceMock) SubmitAvailability(ctx context.Context, jobID, tuteeID string, req service.AvailabilityRequest) (*models.Job, []string, error) {
	return m.job, m.warnings, m.err
}

func (m *lifecycleServiceMock) Schedule(ctx context.Context, jobID, tutorID string, req service.ScheduleRequest) (*models.Job, []string, error) {
	m.scheduleCalled = true
	m.lastScheduled = req
	return m.job, m.warnings, m.err
}

func (m *lifecycleServiceMock) SubmitRecording(ctx context.Context, jobID, tutorID string, req service.RecordingRequest) (*models.SessionRecording, error) {
	return m.recording, m.err
}

func (m *lifecycleServiceMock) Complete(ctx context.Context, jobID, tutorID string) (*models.AwaitingVerificationJob, []string, error) {
	return m.awaiting, m.warnings, m.err
}

func (m *lifecycleServiceMock) Cancel(ctx context.Context, jobID, actorID string, actorRole models.UserRole) (*models.Opportunity, []string, error) {
	m.cancelCalled = true
	m.lastActorID = actorID
	m.lastActorRole = actorRole
	return m.recreated, m.warnings, m.err
}

func (m *lifecycleServiceMock) GetJobForTutor(ctx context.Context, jobID, tutorID string) (*models.Job, error) {
	return m.job, m.err
}

func (m *lifecycleServiceMock) GetJobForTutee(ctx context.Context, jobID, tuteeID string) (*models.Job, error) {
	return m.job, m.err
}

func (m *lifecycleServiceMock) ListJobsForTutor(ctx context.Context, tutorID string) ([]models.Job, error) {
	return m.jobs, m.err
}

func (m *lifecycleServiceMock) ListJobsForTutee(ctx context.Context, tuteeID string) ([]models.Job, error) {
	return m.jobs, m.err
}

func (m *lifecycleServiceMock) ListAllJobs(ctx context.Context, limit int) ([]models.Job, error) {
	return m.jobs, m.err
}

type verificationServiceMock struct {
	awaiting []models.AwaitingVerificationJob
	past     *models.PastJob
	history  []models.PastJob
	warnings []string
	err      error

	verifyCalled bool
	lastRequest  service.VerifyRequest
}

func (m *verificationServiceMock) ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error) {
	return m.awaiting, m.err
}

func (m *verificationServiceMock) ListAwaitingForTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error) {
	return m.awaiting, m.err
}

func (m *verificationServiceMock) Verify(ctx context.Context, awaitingID, adminID string, req service.VerifyRequest) (*models.PastJob, []string, error) {
	m.verifyCalled = true
	m.lastRequest = req
	return m.past, m.warnings, m.err
}

func (m *verificationServiceMock) ListPast(ctx context.Context, limit int) ([]models.PastJob, error) {
	return m.history, m.err
}

func (m *verificationServiceMock) ListPastForTutor(ctx context.Context, tutorID string) ([]models.PastJob, error) {
	return m.history, m.err
}

type approvalServiceMock struct {
	approvals []models.SubjectApproval
	approval  *models.SubjectApproval
	request   *models.CertificationRequest
	requests  []models.CertificationRequest
	warnings  []string
	err       error

	resolveCalled bool
	lastApprove   bool
}

func (m *approvalServiceMock) ListForTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error) {
	return m.approvals, m.err
}

func (m *approvalServiceMock) RequestCertification(ctx context.Context, tutor *models.Tutor, input service.CertificationRequestInput) (*models.CertificationRequest, error) {
	return m.request, m.err
}

func (m *approvalServiceMock) ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error) {
	return m.requests, m.err
}

func (m *approvalServiceMock) ResolveCertification(ctx context.Context, requestID, adminID string, approve bool) (*models.SubjectApproval, []string, error) {
	m.resolveCalled = true
	m.lastApprove = approve
	return m.approval, m.warnings, m.err
}

func (m *approvalServiceMock) GrantApproval(ctx context.Context, tutorID, adminID string, subject models.SubjectDescriptor) (*models.SubjectApproval, error) {
	return m.approval, m.err
}

type reportServiceMock struct {
	file *service.ReportFile
	err  error
}

func (m *reportServiceMock) VolunteerHours(ctx context.Context, format service.ReportFormat) (*service.ReportFile, error) {
	return m.file, m.err
}

func (m *reportServiceMock) VerifiedSessions(ctx context.Context, format service.ReportFormat) (*service.ReportFile, error) {
	return m.file, m.err
}
