package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/pkg/jobs"
	"github.com/peerlearn/tutoring-api/pkg/mailer"
)

// Notification types recorded in the communications log.
const (
	NotificationJobAccepted       = "job_accepted"
	NotificationAvailabilityReady = "availability_submitted"
	NotificationSessionScheduled  = "session_scheduled"
	NotificationJobCancelled      = "job_cancelled"
	NotificationSessionCompleted  = "session_completed"
	NotificationHoursVerified     = "hours_verified"
	NotificationCertification     = "certification_decision"
	NotificationSessionReminder   = "session_reminder"
)

type communicationWriter interface {
	Create(ctx context.Context, comm *models.Communication) error
}

// NotificationService composes lifecycle emails and dispatches them through
// a background queue. Every delivery is best-effort: callers surface
// failures as warnings, never as request errors.
type NotificationService struct {
	mailer  mailer.Mailer
	comms   communicationWriter
	queue   *jobs.Queue
	enabled bool
	logger  *zap.Logger
}

type emailTask struct {
	JobID   string
	Type    string
	Message mailer.Message
}

// NewNotificationService constructs the service and its dispatch queue.
// The queue must be started by the caller before notifications flow.
func NewNotificationService(m mailer.Mailer, comms communicationWriter, enabled bool, cfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{mailer: m, comms: comms, enabled: enabled, logger: logger}
	svc.queue = jobs.NewQueue("notifications", svc.handleTask, cfg)
	return svc
}

// Queue exposes the dispatch queue for lifecycle management.
func (s *NotificationService) Queue() *jobs.Queue {
	return s.queue
}

func (s *NotificationService) handleTask(ctx context.Context, task jobs.Task) error {
	payload, ok := task.Payload.(emailTask)
	if !ok {
		s.logger.Sugar().Errorw("notification task has unexpected payload", "task_id", task.ID)
		return nil
	}

	if err := s.mailer.Send(ctx, payload.Message); err != nil {
		return fmt.Errorf("send %s notification: %w", payload.Type, err)
	}

	if s.comms != nil && payload.JobID != "" {
		comm := &models.Communication{
			JobID:     payload.JobID,
			Type:      payload.Type,
			Recipient: payload.Message.ToEmail,
			Subject:   payload.Message.Subject,
			Content:   payload.Message.TextBody,
			Status:    "sent",
		}
		if err := s.comms.Create(ctx, comm); err != nil {
			s.logger.Sugar().Warnw("failed to log communication", "job_id", payload.JobID, "type", payload.Type, "error", err)
		}
	}
	return nil
}

func (s *NotificationService) enqueue(jobID, notifType string, msg mailer.Message) error {
	if !s.enabled {
		return nil
	}
	task := jobs.Task{ID: uuid.NewString(), Type: notifType, Payload: emailTask{JobID: jobID, Type: notifType, Message: msg}}
	if err := s.queue.Enqueue(task); err != nil {
		return fmt.Errorf("enqueue %s notification: %w", notifType, err)
	}
	return nil
}

// JobAccepted tells the tutee a tutor picked up their request.
func (s *NotificationService) JobAccepted(job *models.Job, tutee *models.Tutee, tutor *models.Tutor) error {
	text := fmt.Sprintf("Hi %s,\n\nGood news! %s has accepted your tutoring request for %s (%s, Grade %s).\n\nPlease log in and submit your availability so your tutor can schedule the first session.\n\nThe Peer Tutoring Team",
		tutee.FirstName, tutor.FullName(), job.Name, job.Type, job.Grade)
	msg := mailer.Message{
		ToName:   tutee.FullName(),
		ToEmail:  tutee.Email,
		Subject:  fmt.Sprintf("A tutor accepted your %s request", job.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(job.ID, NotificationJobAccepted, msg)
}

// AvailabilitySubmitted tells the tutor the tutee's availability arrived.
func (s *NotificationService) AvailabilitySubmitted(job *models.Job, tutor *models.Tutor, tutee *models.Tutee) error {
	text := fmt.Sprintf("Hi %s,\n\n%s has submitted their availability for your %s sessions.\n\nPlease log in and pick a session time that works for both of you.\n\nThe Peer Tutoring Team",
		tutor.FirstName, tutee.FullName(), job.Name)
	msg := mailer.Message{
		ToName:   tutor.FullName(),
		ToEmail:  tutor.Email,
		Subject:  fmt.Sprintf("Availability received for %s", job.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(job.ID, NotificationAvailabilityReady, msg)
}

// SessionScheduled confirms the session to both participants with the
// full details: subject, date, time, duration, location and names.
func (s *NotificationService) SessionScheduled(job *models.Job, tutee *models.Tutee, tutor *models.Tutor) error {
	when := ""
	if job.ScheduledTime != nil {
		when = job.ScheduledTime.Format("Monday, 2 January 2006 at 15:04 MST")
	}
	duration := 0
	if job.DurationMinutes != nil {
		duration = *job.DurationMinutes
	}
	location := "to be agreed"
	if job.Location != nil && *job.Location != "" {
		location = *job.Location
	}

	tuteeText := fmt.Sprintf("Hi %s,\n\nYour %s (%s, Grade %s) session with %s has been scheduled for %s (%d minutes).\nLocation: %s.\n\nIf the time does not work, contact your tutor as soon as possible.\n\nThe Peer Tutoring Team",
		tutee.FirstName, job.Name, job.Type, job.Grade, tutor.FullName(), when, duration, location)
	if err := s.enqueue(job.ID, NotificationSessionScheduled, mailer.Message{
		ToName:   tutee.FullName(),
		ToEmail:  tutee.Email,
		Subject:  fmt.Sprintf("Your %s session is scheduled", job.Name),
		TextBody: tuteeText,
		HTMLBody: htmlParagraphs(tuteeText),
	}); err != nil {
		return err
	}

	tutorText := fmt.Sprintf("Hi %s,\n\nYour %s (%s, Grade %s) session with %s is confirmed for %s (%d minutes).\nLocation: %s.\n\nThe Peer Tutoring Team",
		tutor.FirstName, job.Name, job.Type, job.Grade, tutee.FullName(), when, duration, location)
	return s.enqueue(job.ID, NotificationSessionScheduled, mailer.Message{
		ToName:   tutor.FullName(),
		ToEmail:  tutor.Email,
		Subject:  fmt.Sprintf("Your %s session is scheduled", job.Name),
		TextBody: tutorText,
		HTMLBody: htmlParagraphs(tutorText),
	})
}

// JobCancelled tells the other party the pairing ended and the request is
// open again.
func (s *NotificationService) JobCancelled(job *models.Job, toName, toEmail string) error {
	text := fmt.Sprintf("Hi %s,\n\nYour %s tutoring pairing has been cancelled. The original request has been reopened so another match can be made.\n\nNo action is needed from you right now.\n\nThe Peer Tutoring Team",
		toName, job.Name)
	msg := mailer.Message{
		ToName:   toName,
		ToEmail:  toEmail,
		Subject:  fmt.Sprintf("Your %s tutoring pairing was cancelled", job.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(job.ID, NotificationJobCancelled, msg)
}

// SessionCompleted tells the tutor their session awaits admin verification.
func (s *NotificationService) SessionCompleted(job *models.Job, tutor *models.Tutor) error {
	text := fmt.Sprintf("Hi %s,\n\nYour %s session has been marked complete and sent to an administrator for verification. Your volunteer hours will be credited once it is approved.\n\nThe Peer Tutoring Team",
		tutor.FirstName, job.Name)
	msg := mailer.Message{
		ToName:   tutor.FullName(),
		ToEmail:  tutor.Email,
		Subject:  fmt.Sprintf("%s session submitted for verification", job.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(job.ID, NotificationSessionCompleted, msg)
}

// HoursVerified tells the tutor their volunteer hours were credited.
func (s *NotificationService) HoursVerified(past *models.PastJob, tutor *models.Tutor) error {
	text := fmt.Sprintf("Hi %s,\n\nYour %s session with %s has been verified. %.1f volunteer hours have been added to your record.\n\nThank you for tutoring!\n\nThe Peer Tutoring Team",
		tutor.FirstName, past.Name, past.TuteeName, past.AwardedVolunteerHours)
	msg := mailer.Message{
		ToName:   tutor.FullName(),
		ToEmail:  tutor.Email,
		Subject:  "Your volunteer hours were verified",
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(past.JobID, NotificationHoursVerified, msg)
}

// CertificationDecision tells the tutor how their request was resolved.
func (s *NotificationService) CertificationDecision(tutor *models.Tutor, subject models.SubjectDescriptor, approved bool) error {
	var text string
	if approved {
		text = fmt.Sprintf("Hi %s,\n\nYou have been approved to tutor %s (%s, Grade %s). Matching opportunities will now appear in your listing.\n\nThe Peer Tutoring Team",
			tutor.FirstName, subject.Name, subject.Type, subject.Grade)
	} else {
		text = fmt.Sprintf("Hi %s,\n\nYour certification request for %s (%s, Grade %s) was not approved this time. You can reach out to an administrator for details or reapply later.\n\nThe Peer Tutoring Team",
			tutor.FirstName, subject.Name, subject.Type, subject.Grade)
	}
	msg := mailer.Message{
		ToName:   tutor.FullName(),
		ToEmail:  tutor.Email,
		Subject:  fmt.Sprintf("Certification decision for %s", subject.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue("", NotificationCertification, msg)
}

// SessionReminder nudges a participant about tomorrow's session.
func (s *NotificationService) SessionReminder(job *models.Job, toName, toEmail string) error {
	when := ""
	if job.ScheduledTime != nil {
		when = job.ScheduledTime.Format("Monday, 2 January 2006 at 15:04 MST")
	}
	text := fmt.Sprintf("Hi %s,\n\nThis is a reminder that your %s tutoring session is coming up on %s.\n\nThe Peer Tutoring Team",
		toName, job.Name, when)
	msg := mailer.Message{
		ToName:   toName,
		ToEmail:  toEmail,
		Subject:  fmt.Sprintf("Reminder: %s session tomorrow", job.Name),
		TextBody: text,
		HTMLBody: htmlParagraphs(text),
	}
	return s.enqueue(job.ID, NotificationSessionReminder, msg)
}

// htmlParagraphs turns plain-text paragraphs into a minimal HTML body.
func htmlParagraphs(text string) string {
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
