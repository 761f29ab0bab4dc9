package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type mockVerificationRepo struct {
	awaiting map[string]models.AwaitingVerificationJob
	past     []*models.PastJob
	deleted  []string
}

func (m *mockVerificationRepo) FindAwaitingByID(ctx context.Context, id string) (*models.AwaitingVerificationJob, error) {
	if a, ok := m.awaiting[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockVerificationRepo) ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error) {
	out := make([]models.AwaitingVerificationJob, 0, len(m.awaiting))
	for _, a := range m.awaiting {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockVerificationRepo) ListAwaitingByTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error) {
	return nil, nil
}

func (m *mockVerificationRepo) DeleteAwaiting(ctx context.Context, id string) error {
	delete(m.awaiting, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockVerificationRepo) CreatePast(ctx context.Context, past *models.PastJob) error {
	if past.ID == "" {
		past.ID = "past-1"
	}
	m.past = append(m.past, past)
	return nil
}

func (m *mockVerificationRepo) ListPast(ctx context.Context, limit int) ([]models.PastJob, error) {
	out := make([]models.PastJob, 0, len(m.past))
	for _, p := range m.past {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockVerificationRepo) ListPastByTutor(ctx context.Context, tutorID string) ([]models.PastJob, error) {
	return nil, nil
}

type mockHoursCrediter struct {
	tutors  map[string]models.Tutor
	credits map[string]float64
	calls   int
}

func (m *mockHoursCrediter) FindTutorByID(ctx context.Context, id string) (*models.Tutor, error) {
	if t, ok := m.tutors[id]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockHoursCrediter) AddVolunteerHours(ctx context.Context, tutorID string, hours float64) error {
	if m.credits == nil {
		m.credits = make(map[string]float64)
	}
	m.credits[tutorID] += hours
	m.calls++
	return nil
}

type mockVerificationNotifier struct {
	verified int
}

func (m *mockVerificationNotifier) HoursVerified(past *models.PastJob, tutor *models.Tutor) error {
	m.verified++
	return nil
}

func seedAwaiting() models.AwaitingVerificationJob {
	duration := 90
	when := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	return models.AwaitingVerificationJob{
		ID:                "av-1",
		JobID:             "job-1",
		OpportunityID:     "opp-1",
		TutorID:           "tutor-1",
		TuteeID:           "tutee-1",
		TutorName:         "Grace Hopper",
		TuteeName:         "Ada Lovelace",
		SubjectDescriptor: models.SubjectDescriptor{Name: "Chemistry HL", Type: "IB", Grade: "11"},
		ScheduledTime:     &when,
		DurationMinutes:   &duration,
		RecordingURL:      "https://rec.example/1",
		Status:            models.StatusAwaitingVerification,
	}
}

func newVerificationFixture() (*VerificationService, *mockVerificationRepo, *mockHoursCrediter, *mockCommCleaner, *mockVerificationNotifier) {
	repo := &mockVerificationRepo{awaiting: map[string]models.AwaitingVerificationJob{"av-1": seedAwaiting()}}
	crediter := &mockHoursCrediter{tutors: map[string]models.Tutor{
		"tutor-1": {ID: "tutor-1", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.org", Status: models.TutorActive},
	}}
	comms := &mockCommCleaner{}
	notifier := &mockVerificationNotifier{}
	svc := NewVerificationService(repo, crediter, comms, notifier, nil)
	return svc, repo, crediter, comms, notifier
}

func TestVerifyCreditsDurationHoursOnce(t *testing.T) {
	svc, repo, crediter, comms, notifier := newVerificationFixture()

	past, warnings, err := svc.Verify(context.Background(), "av-1", "admin-1", VerifyRequest{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1.5, past.AwardedVolunteerHours)
	assert.Equal(t, "admin-1", past.VerifiedBy)
	assert.Equal(t, 1.5, crediter.credits["tutor-1"])
	assert.Equal(t, 1, crediter.calls)
	assert.NotContains(t, repo.awaiting, "av-1")
	assert.Equal(t, []string{"job-1"}, comms.cleared)
	assert.Equal(t, 1, notifier.verified)
}

func TestVerifyHonorsHoursOverride(t *testing.T) {
	svc, _, crediter, _, _ := newVerificationFixture()

	override := 2.0
	past, _, err := svc.Verify(context.Background(), "av-1", "admin-1", VerifyRequest{AwardedHours: &override})
	require.NoError(t, err)
	assert.Equal(t, 2.0, past.AwardedVolunteerHours)
	assert.Equal(t, 2.0, crediter.credits["tutor-1"])
}

func TestVerifyRejectsNegativeOverride(t *testing.T) {
	svc, repo, crediter, _, _ := newVerificationFixture()

	override := -1.0
	_, _, err := svc.Verify(context.Background(), "av-1", "admin-1", VerifyRequest{AwardedHours: &override})
	require.Error(t, err)
	assert.Equal(t, 0, crediter.calls)
	assert.Contains(t, repo.awaiting, "av-1")
}

func TestVerifyMissingEntry(t *testing.T) {
	svc, _, _, _, _ := newVerificationFixture()

	_, _, err := svc.Verify(context.Background(), "missing", "admin-1", VerifyRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
