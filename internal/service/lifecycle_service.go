package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.Job, error)
	ListByTutee(ctx context.Context, tuteeID string) ([]models.Job, error)
	ListAll(ctx context.Context, limit int) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
}

type recordingRepository interface {
	Upsert(ctx context.Context, rec *models.SessionRecording) error
	FindByJobID(ctx context.Context, jobID string) (*models.SessionRecording, error)
}

type awaitingWriter interface {
	CreateAwaiting(ctx context.Context, awaiting *models.AwaitingVerificationJob) error
}

type profileReader interface {
	FindTutorByID(ctx context.Context, id string) (*models.Tutor, error)
	FindTuteeByID(ctx context.Context, id string) (*models.Tutee, error)
}

type approvalGate interface {
	IsApproved(ctx context.Context, tutorID string, subject models.SubjectDescriptor) (bool, error)
}

type communicationCleaner interface {
	DeleteByJobID(ctx context.Context, jobID string) error
}

type lifecycleNotifier interface {
	JobAccepted(job *models.Job, tutee *models.Tutee, tutor *models.Tutor) error
	AvailabilitySubmitted(job *models.Job, tutor *models.Tutor, tutee *models.Tutee) error
	SessionScheduled(job *models.Job, tutee *models.Tutee, tutor *models.Tutor) error
	JobCancelled(job *models.Job, toName, toEmail string) error
	SessionCompleted(job *models.Job, tutor *models.Tutor) error
}

// LifecycleService drives the opportunity/job state machine: accept,
// availability submission, scheduling, cancellation and completion. Every
// multi-row transition inserts the successor row before deleting the
// predecessor so a crash between the two steps never loses the work, only
// duplicates it.
type LifecycleService struct {
	opportunities opportunityRepository
	jobs          jobRepository
	recordings    recordingRepository
	awaiting      awaitingWriter
	profiles      profileReader
	approvals     approvalGate
	comms         communicationCleaner
	notifier      lifecycleNotifier
	cache         listingCache
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewLifecycleService constructs the service.
func NewLifecycleService(
	opportunities opportunityRepository,
	jobs jobRepository,
	recordings recordingRepository,
	awaiting awaitingWriter,
	profiles profileReader,
	approvals approvalGate,
	comms communicationCleaner,
	notifier lifecycleNotifier,
	cache listingCache,
	validate *validator.Validate,
	logger *zap.Logger,
) *LifecycleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{
		opportunities: opportunities,
		jobs:          jobs,
		recordings:    recordings,
		awaiting:      awaiting,
		profiles:      profiles,
		approvals:     approvals,
		comms:         comms,
		notifier:      notifier,
		cache:         cache,
		validator:     validate,
		logger:        logger,
	}
}

// Accept claims an open opportunity for a tutor, superseding it with a
// Job. The Job is inserted first; the guarded delete of the opportunity
// then acts as the claim. Losing that race rolls the Job back and reports
// a conflict.
func (s *LifecycleService) Accept(ctx context.Context, opportunityID string, tutor *models.Tutor) (*models.Job, []string, error) {
	if tutor.Status != models.TutorActive {
		return nil, nil, appErrors.ErrTutorNotActive
	}

	opp, err := s.opportunities.FindByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "opportunity not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load opportunity")
	}
	if opp.Status != models.OpportunityOpen {
		return nil, nil, appErrors.ErrOpportunityNotOpen
	}

	approved, err := s.approvals.IsApproved(ctx, tutor.ID, opp.SubjectDescriptor)
	if err != nil {
		return nil, nil, err
	}
	if !approved {
		return nil, nil, appErrors.ErrNotApprovedForSubject
	}

	job, err := models.NewJobFromOpportunity(opp, tutor.ID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build job")
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	claimed, err := s.opportunities.DeleteIfOpen(ctx, opp.ID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to claim opportunity")
	}
	if !claimed {
		if delErr := s.jobs.Delete(ctx, job.ID); delErr != nil {
			s.logger.Sugar().Errorw("failed to roll back job after lost claim", "job_id", job.ID, "error", delErr)
		}
		return nil, nil, appErrors.ErrOpportunityClaimed
	}
	s.invalidateListing(ctx)

	var warnings []string
	tutee, err := s.profiles.FindTuteeByID(ctx, job.TuteeID)
	if err != nil {
		s.logger.Sugar().Warnw("failed to load tutee for accept email", "tutee_id", job.TuteeID, "error", err)
		warnings = append(warnings, "tutee_notification_skipped")
	} else if s.notifier != nil {
		if err := s.notifier.JobAccepted(job, tutee, tutor); err != nil {
			s.logger.Sugar().Warnw("failed to enqueue accept email", "job_id", job.ID, "error", err)
			warnings = append(warnings, "tutee_notification_failed")
		}
	}
	return job, warnings, nil
}

// AvailabilityRequest is the tutee's scheduling input.
type AvailabilityRequest struct {
	Availability           models.Availability `json:"availability" validate:"required"`
	DesiredDurationMinutes *int                `json:"desired_duration_minutes"`
}

// SubmitAvailability records the tutee's availability and hands scheduling
// to the tutor. Resubmission while still unscheduled is allowed.
func (s *LifecycleService) SubmitAvailability(ctx context.Context, jobID, tuteeID string, req AvailabilityRequest) (*models.Job, []string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	for date, ranges := range req.Availability {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid availability date "+date)
		}
		for _, token := range ranges {
			if _, _, err := models.ParseTimeRange(token); err != nil {
				return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability range "+token)
			}
		}
	}
	if req.DesiredDurationMinutes != nil && !models.ValidSessionMinutes(*req.DesiredDurationMinutes) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "desired duration must be 60-180 minutes in 30 minute steps")
	}

	job, err := s.loadJobFor(ctx, jobID, "", tuteeID)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != models.JobPendingTuteeScheduling && job.Status != models.JobPendingTutorScheduling {
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, "job_not_awaiting_availability")
	}

	job.TuteeAvailability = req.Availability
	job.DesiredDurationMinutes = req.DesiredDurationMinutes
	job.Status = models.JobPendingTutorScheduling
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}

	var warnings []string
	tutor, terr := s.profiles.FindTutorByID(ctx, job.TutorID)
	tutee, uerr := s.profiles.FindTuteeByID(ctx, job.TuteeID)
	if terr != nil || uerr != nil {
		warnings = append(warnings, "tutor_notification_skipped")
	} else if s.notifier != nil {
		if err := s.notifier.AvailabilitySubmitted(job, tutor, tutee); err != nil {
			s.logger.Sugar().Warnw("failed to enqueue availability email", "job_id", job.ID, "error", err)
			warnings = append(warnings, "tutor_notification_failed")
		}
	}
	return job, warnings, nil
}

// ScheduleRequest is the tutor's chosen session slot.
type ScheduleRequest struct {
	ScheduledTime   time.Time `json:"scheduled_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required"`
}

// Schedule fixes the session time. The slot must fit inside the tutee's
// declared availability for that date, and the duration must match the
// tutee's preference when one was given. The tutor may schedule before
// the tutee has submitted availability; the slot is then unconstrained.
func (s *LifecycleService) Schedule(ctx context.Context, jobID, tutorID string, req ScheduleRequest) (*models.Job, []string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if !models.ValidSessionMinutes(req.DurationMinutes) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "duration must be 60-180 minutes in 30 minute steps")
	}

	job, err := s.loadJobFor(ctx, jobID, tutorID, "")
	if err != nil {
		return nil, nil, err
	}
	switch job.Status {
	case models.JobPendingTuteeScheduling, models.JobPendingTutorScheduling, models.JobScheduled:
	default:
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, "job_not_ready_for_scheduling")
	}

	if job.DesiredDurationMinutes != nil && *job.DesiredDurationMinutes != req.DurationMinutes {
		return nil, nil, appErrors.ErrDurationMismatch
	}

	when := req.ScheduledTime.UTC()
	date := when.Format("2006-01-02")
	startMin := when.Hour()*60 + when.Minute()
	if !job.TuteeAvailability.Contains(date, startMin, req.DurationMinutes) {
		return nil, nil, appErrors.ErrTimeNotInAvailability
	}

	job.ScheduledTime = &when
	job.DurationMinutes = &req.DurationMinutes
	job.Status = models.JobScheduled
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule session")
	}

	var warnings []string
	tutee, uerr := s.profiles.FindTuteeByID(ctx, job.TuteeID)
	tutor, terr := s.profiles.FindTutorByID(ctx, job.TutorID)
	if uerr != nil || terr != nil {
		warnings = append(warnings, "notification_skipped")
	} else if s.notifier != nil {
		if err := s.notifier.SessionScheduled(job, tutee, tutor); err != nil {
			s.logger.Sugar().Warnw("failed to enqueue schedule emails", "job_id", job.ID, "error", err)
			warnings = append(warnings, "notification_failed")
		}
	}
	return job, warnings, nil
}

// Cancel ends a pairing from either side and reopens the original request
// from the job's snapshot. The recreated opportunity is inserted before
// the job is deleted; when the snapshot cannot rebuild a valid
// opportunity the job is kept and the cancellation fails.
func (s *LifecycleService) Cancel(ctx context.Context, jobID, actorID string, actorRole models.UserRole) (*models.Opportunity, []string, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	switch actorRole {
	case models.RoleTutor:
		if job.TutorID != actorID {
			return nil, nil, appErrors.ErrForbidden
		}
	case models.RoleTutee:
		if job.TuteeID != actorID {
			return nil, nil, appErrors.ErrForbidden
		}
	case models.RoleAdmin:
	default:
		return nil, nil, appErrors.ErrForbidden
	}

	opp, err := job.RecreateOpportunity()
	if err != nil {
		s.logger.Sugar().Errorw("snapshot cannot recreate opportunity", "job_id", job.ID, "error", err)
		return nil, nil, appErrors.ErrCannotRecreate
	}
	if err := s.opportunities.Create(ctx, opp); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reopen opportunity")
	}

	var warnings []string
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		// The reopened opportunity already exists; retrying the cancel
		// would insert another. Leave the stale job for admin cleanup.
		s.logger.Sugar().Errorw("failed to delete job after reopening opportunity", "job_id", job.ID, "error", err)
		warnings = append(warnings, "job_cleanup_failed")
	}
	s.invalidateListing(ctx)

	if s.comms != nil {
		if err := s.comms.DeleteByJobID(ctx, job.ID); err != nil {
			s.logger.Sugar().Warnw("failed to clear communications", "job_id", job.ID, "error", err)
			warnings = append(warnings, "communications_cleanup_failed")
		}
	}
	warnings = append(warnings, s.notifyCancelled(ctx, job, actorRole)...)
	return opp, warnings, nil
}

func (s *LifecycleService) notifyCancelled(ctx context.Context, job *models.Job, actorRole models.UserRole) []string {
	if s.notifier == nil {
		return nil
	}
	var warnings []string
	if actorRole != models.RoleTutor {
		if tutor, err := s.profiles.FindTutorByID(ctx, job.TutorID); err == nil {
			if err := s.notifier.JobCancelled(job, tutor.FullName(), tutor.Email); err != nil {
				warnings = append(warnings, "tutor_notification_failed")
			}
		} else {
			warnings = append(warnings, "tutor_notification_skipped")
		}
	}
	if actorRole != models.RoleTutee {
		if tutee, err := s.profiles.FindTuteeByID(ctx, job.TuteeID); err == nil {
			if err := s.notifier.JobCancelled(job, tutee.FullName(), tutee.Email); err != nil {
				warnings = append(warnings, "tutee_notification_failed")
			}
		} else {
			warnings = append(warnings, "tutee_notification_skipped")
		}
	}
	return warnings
}

// RecordingRequest attaches a session recording link to a job.
type RecordingRequest struct {
	RecordingURL string `json:"recording_url" validate:"required"`
}

// SubmitRecording stores the recording link that completion requires.
func (s *LifecycleService) SubmitRecording(ctx context.Context, jobID, tutorID string, req RecordingRequest) (*models.SessionRecording, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recording payload")
	}
	if !models.ValidRecordingURL(req.RecordingURL) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recording_url must be an absolute http(s) URL")
	}

	job, err := s.loadJobFor(ctx, jobID, tutorID, "")
	if err != nil {
		return nil, err
	}

	rec := &models.SessionRecording{JobID: job.ID, RecordingURL: req.RecordingURL}
	if err := s.recordings.Upsert(ctx, rec); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save recording")
	}
	return rec, nil
}

// Complete moves a scheduled job into the admin verification queue. A
// valid recording link is a hard precondition; participant names are
// denormalized best-effort so verification survives profile changes.
func (s *LifecycleService) Complete(ctx context.Context, jobID, tutorID string) (*models.AwaitingVerificationJob, []string, error) {
	job, err := s.loadJobFor(ctx, jobID, tutorID, "")
	if err != nil {
		return nil, nil, err
	}
	if job.Status != models.JobScheduled {
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, "job_not_scheduled")
	}

	rec, err := s.recordings.FindByJobID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.ErrRecordingRequired
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recording")
	}
	if !models.ValidRecordingURL(rec.RecordingURL) {
		return nil, nil, appErrors.ErrRecordingRequired
	}

	var warnings []string
	var tutorName, tuteeName string
	tutor, terr := s.profiles.FindTutorByID(ctx, job.TutorID)
	if terr != nil {
		s.logger.Sugar().Warnw("failed to load tutor name for verification", "tutor_id", job.TutorID, "error", terr)
		warnings = append(warnings, "tutor_name_unresolved")
	} else {
		tutorName = tutor.FullName()
	}
	if tutee, err := s.profiles.FindTuteeByID(ctx, job.TuteeID); err != nil {
		s.logger.Sugar().Warnw("failed to load tutee name for verification", "tutee_id", job.TuteeID, "error", err)
		warnings = append(warnings, "tutee_name_unresolved")
	} else {
		tuteeName = tutee.FullName()
	}

	awaiting := models.NewAwaitingVerificationJob(job, tutorName, tuteeName, rec.RecordingURL)
	if err := s.awaiting.CreateAwaiting(ctx, awaiting); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue verification")
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		s.logger.Sugar().Errorw("failed to delete job after queueing verification", "job_id", job.ID, "error", err)
		warnings = append(warnings, "job_cleanup_failed")
	}
	if s.comms != nil {
		if err := s.comms.DeleteByJobID(ctx, job.ID); err != nil {
			s.logger.Sugar().Warnw("failed to clear communications", "job_id", job.ID, "error", err)
			warnings = append(warnings, "communications_cleanup_failed")
		}
	}

	if s.notifier != nil && tutor != nil {
		if err := s.notifier.SessionCompleted(job, tutor); err != nil {
			warnings = append(warnings, "tutor_notification_failed")
		}
	}
	return awaiting, warnings, nil
}

// ListJobsForTutor returns a tutor's active jobs.
func (s *LifecycleService) ListJobsForTutor(ctx context.Context, tutorID string) ([]models.Job, error) {
	jobsList, err := s.jobs.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobsList, nil
}

// ListJobsForTutee returns a tutee's active jobs.
func (s *LifecycleService) ListJobsForTutee(ctx context.Context, tuteeID string) ([]models.Job, error) {
	jobsList, err := s.jobs.ListByTutee(ctx, tuteeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobsList, nil
}

// GetJobForTutor fetches a single job owned by the tutor.
func (s *LifecycleService) GetJobForTutor(ctx context.Context, jobID, tutorID string) (*models.Job, error) {
	return s.loadJobFor(ctx, jobID, tutorID, "")
}

// GetJobForTutee fetches a single job owned by the tutee.
func (s *LifecycleService) GetJobForTutee(ctx context.Context, jobID, tuteeID string) (*models.Job, error) {
	return s.loadJobFor(ctx, jobID, "", tuteeID)
}

// ListAllJobs returns recent jobs for the admin console.
func (s *LifecycleService) ListAllJobs(ctx context.Context, limit int) ([]models.Job, error) {
	jobsList, err := s.jobs.ListAll(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobsList, nil
}

func (s *LifecycleService) findJob(ctx context.Context, jobID string) (*models.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// loadJobFor fetches a job and enforces participant ownership. Pass the
// tutor or tutee ID to check, leaving the other empty.
func (s *LifecycleService) loadJobFor(ctx context.Context, jobID, tutorID, tuteeID string) (*models.Job, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if tutorID != "" && job.TutorID != tutorID {
		return nil, appErrors.ErrForbidden
	}
	if tuteeID != "" && job.TuteeID != tuteeID {
		return nil, appErrors.ErrForbidden
	}
	return job, nil
}

func (s *LifecycleService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "opportunities:*"); err != nil {
		s.logger.Sugar().Warnw("listing cache invalidation failed", "error", err)
	}
}
