package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
	"github.com/peerlearn/tutoring-api/pkg/jobs"
	"github.com/peerlearn/tutoring-api/pkg/mailer"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	done chan struct{}
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{done: make(chan struct{}, 16)}
}

func (m *captureMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *captureMailer) messages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *captureMailer) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-m.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d of %d", i+1, n)
		}
	}
}

func TestSessionScheduledNotifiesBothParties(t *testing.T) {
	capture := newCaptureMailer()
	svc := NewNotificationService(capture, nil, true, jobs.QueueConfig{Workers: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Queue().Start(ctx)
	defer svc.Queue().Stop()

	when := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	duration := 90
	location := "School Library"
	job := &models.Job{
		ID:                "job-1",
		SubjectDescriptor: models.SubjectDescriptor{Name: "Chemistry HL", Type: "IB", Grade: "11"},
		Location:          &location,
		ScheduledTime:     &when,
		DurationMinutes:   &duration,
	}
	tutee := &models.Tutee{ID: "tutee-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org"}
	tutor := &models.Tutor{ID: "tutor-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.org"}

	require.NoError(t, svc.SessionScheduled(job, tutee, tutor))
	capture.waitFor(t, 2)

	sent := capture.messages()
	require.Len(t, sent, 2)
	recipients := map[string]mailer.Message{}
	for _, msg := range sent {
		recipients[msg.ToEmail] = msg
	}
	require.Contains(t, recipients, "ada@example.org")
	require.Contains(t, recipients, "grace@example.org")

	tuteeMsg := recipients["ada@example.org"]
	assert.Contains(t, tuteeMsg.TextBody, "Grace Hopper")
	assert.Contains(t, tuteeMsg.TextBody, "School Library")
	assert.Contains(t, tuteeMsg.TextBody, "90 minutes")
	assert.Contains(t, tuteeMsg.TextBody, "Chemistry HL")

	tutorMsg := recipients["grace@example.org"]
	assert.Contains(t, tutorMsg.TextBody, "Ada Lovelace")
	assert.Contains(t, tutorMsg.TextBody, "School Library")
}

func TestNotificationsDisabledSendsNothing(t *testing.T) {
	capture := newCaptureMailer()
	svc := NewNotificationService(capture, nil, false, jobs.QueueConfig{Workers: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Queue().Start(ctx)
	defer svc.Queue().Stop()

	job := &models.Job{ID: "job-1", SubjectDescriptor: models.SubjectDescriptor{Name: "Math"}}
	tutee := &models.Tutee{Email: "ada@example.org"}
	tutor := &models.Tutor{Email: "grace@example.org"}

	require.NoError(t, svc.SessionScheduled(job, tutee, tutor))
	assert.Empty(t, capture.messages())
}
