package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type verificationRepository interface {
	FindAwaitingByID(ctx context.Context, id string) (*models.AwaitingVerificationJob, error)
	ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error)
	ListAwaitingByTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error)
	DeleteAwaiting(ctx context.Context, id string) error
	CreatePast(ctx context.Context, past *models.PastJob) error
	ListPast(ctx context.Context, limit int) ([]models.PastJob, error)
	ListPastByTutor(ctx context.Context, tutorID string) ([]models.PastJob, error)
}

type hoursCrediter interface {
	FindTutorByID(ctx context.Context, id string) (*models.Tutor, error)
	AddVolunteerHours(ctx context.Context, tutorID string, hours float64) error
}

type verificationNotifier interface {
	HoursVerified(past *models.PastJob, tutor *models.Tutor) error
}

// VerificationService lets admins sign off completed sessions, archiving
// them and crediting tutor volunteer hours exactly once.
type VerificationService struct {
	repo     verificationRepository
	profiles hoursCrediter
	comms    communicationCleaner
	notifier verificationNotifier
	logger   *zap.Logger
}

// NewVerificationService constructs the service.
func NewVerificationService(repo verificationRepository, profiles hoursCrediter, comms communicationCleaner, notifier verificationNotifier, logger *zap.Logger) *VerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VerificationService{repo: repo, profiles: profiles, comms: comms, notifier: notifier, logger: logger}
}

// ListAwaiting returns the verification queue.
func (s *VerificationService) ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error) {
	queue, err := s.repo.ListAwaiting(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list verification queue")
	}
	return queue, nil
}

// ListAwaitingForTutor returns a tutor's pending verifications.
func (s *VerificationService) ListAwaitingForTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error) {
	queue, err := s.repo.ListAwaitingByTutor(ctx, tutorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list verification queue")
	}
	return queue, nil
}

// ListPast returns the verified archive.
func (s *VerificationService) ListPast(ctx context.Context, limit int) ([]models.PastJob, error) {
	past, err := s.repo.ListPast(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list past jobs")
	}
	return past, nil
}

// ListPastForTutor returns a tutor's verified history.
func (s *VerificationService) ListPastForTutor(ctx context.Context, tutorID string) ([]models.PastJob, error) {
	past, err := s.repo.ListPastByTutor(ctx, tutorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list past jobs")
	}
	return past, nil
}

// VerifyRequest is the admin's sign-off; hours default to the session
// duration when no override is given.
type VerifyRequest struct {
	AwardedHours *float64 `json:"awarded_hours"`
}

// Verify archives an awaiting job as a PastJob and credits the tutor. The
// archive row is inserted before the queue entry is deleted, so a crash
// between the two duplicates rather than loses the record; the atomic
// hours increment runs once, after the archive insert succeeds.
func (s *VerificationService) Verify(ctx context.Context, awaitingID, adminID string, req VerifyRequest) (*models.PastJob, []string, error) {
	awaiting, err := s.repo.FindAwaitingByID(ctx, awaitingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "verification entry not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load verification entry")
	}

	hours := 0.0
	if awaiting.DurationMinutes != nil {
		hours = float64(*awaiting.DurationMinutes) / 60.0
	}
	if req.AwardedHours != nil {
		hours = *req.AwardedHours
	}

	past, err := models.NewPastJob(awaiting, adminID, hours, time.Now().UTC())
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if err := s.repo.CreatePast(ctx, past); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive job")
	}

	if err := s.profiles.AddVolunteerHours(ctx, past.TutorID, past.AwardedVolunteerHours); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to credit volunteer hours")
	}

	var warnings []string
	if err := s.repo.DeleteAwaiting(ctx, awaiting.ID); err != nil {
		s.logger.Sugar().Errorw("failed to delete verified queue entry", "awaiting_id", awaiting.ID, "error", err)
		warnings = append(warnings, "verification_cleanup_failed")
	}
	if s.comms != nil {
		if err := s.comms.DeleteByJobID(ctx, awaiting.JobID); err != nil {
			s.logger.Sugar().Warnw("failed to clear communications", "job_id", awaiting.JobID, "error", err)
			warnings = append(warnings, "communications_cleanup_failed")
		}
	}

	if s.notifier != nil {
		if tutor, err := s.profiles.FindTutorByID(ctx, past.TutorID); err == nil {
			if err := s.notifier.HoursVerified(past, tutor); err != nil {
				warnings = append(warnings, "tutor_notification_failed")
			}
		} else {
			warnings = append(warnings, "tutor_notification_skipped")
		}
	}
	return past, warnings, nil
}
