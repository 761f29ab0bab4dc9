package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type scheduledJobLister interface {
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Job, error)
}

type reminderNotifier interface {
	SessionReminder(job *models.Job, toName, toEmail string) error
}

// ReminderService sweeps upcoming scheduled sessions and emails both
// participants. Run as a one-shot from the reminders command.
type ReminderService struct {
	jobs     scheduledJobLister
	profiles profileReader
	notifier reminderNotifier
	leadTime time.Duration
	logger   *zap.Logger
}

// NewReminderService constructs the service. leadTime is how far ahead of
// now the sweep window starts; the window is one day wide.
func NewReminderService(jobs scheduledJobLister, profiles profileReader, notifier reminderNotifier, leadTime time.Duration, logger *zap.Logger) *ReminderService {
	if leadTime <= 0 {
		leadTime = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{jobs: jobs, profiles: profiles, notifier: notifier, leadTime: leadTime, logger: logger}
}

// SweepResult summarizes one reminder run.
type SweepResult struct {
	JobsFound int `json:"jobs_found"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

// Sweep finds sessions starting within the lead window and sends
// reminders. Individual failures are counted, not fatal.
func (s *ReminderService) Sweep(ctx context.Context) (*SweepResult, error) {
	from := time.Now().UTC().Add(s.leadTime).Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	jobsList, err := s.jobs.ListScheduledBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming sessions")
	}

	result := &SweepResult{JobsFound: len(jobsList)}
	for i := range jobsList {
		job := &jobsList[i]
		if tutor, err := s.profiles.FindTutorByID(ctx, job.TutorID); err == nil {
			if err := s.notifier.SessionReminder(job, tutor.FullName(), tutor.Email); err == nil {
				result.Sent++
			} else {
				result.Failed++
			}
		} else {
			s.logger.Sugar().Warnw("reminder skipped, tutor missing", "job_id", job.ID, "error", err)
			result.Failed++
		}
		if tutee, err := s.profiles.FindTuteeByID(ctx, job.TuteeID); err == nil {
			if err := s.notifier.SessionReminder(job, tutee.FullName(), tutee.Email); err == nil {
				result.Sent++
			} else {
				result.Failed++
			}
		} else {
			s.logger.Sugar().Warnw("reminder skipped, tutee missing", "job_id", job.ID, "error", err)
			result.Failed++
		}
	}
	s.logger.Sugar().Infow("reminder sweep finished", "jobs", result.JobsFound, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}
