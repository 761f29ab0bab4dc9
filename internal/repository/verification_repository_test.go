package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
)

func TestVerificationRepositoryCreateAwaiting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	mock.ExpectExec("INSERT INTO awaiting_verification_jobs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.Job{
		ID:                "job-1",
		OpportunityID:     "opp-1",
		TutorID:           "tutor-1",
		TuteeID:           "tutee-1",
		SubjectDescriptor: models.SubjectDescriptor{Name: "Biology", Type: "IB", Grade: "11"},
	}
	awaiting := models.NewAwaitingVerificationJob(job, "Grace Hopper", "Ada Lovelace", "https://rec.example/1")

	err := repo.CreateAwaiting(context.Background(), awaiting)
	require.NoError(t, err)
	assert.NotEmpty(t, awaiting.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepositoryListAwaiting(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "job_id", "opportunity_id", "tutor_id", "tutee_id", "tutor_name", "tutee_name", "subject_name", "subject_type", "subject_grade", "recording_url", "status", "created_at"}).
		AddRow("av-1", "job-1", "opp-1", "tutor-1", "tutee-1", "Grace Hopper", "Ada Lovelace", "Biology", "IB", "11", "https://rec.example/1", models.StatusAwaitingVerification, time.Now())
	mock.ExpectQuery("SELECT .+ FROM awaiting_verification_jobs ORDER BY created_at ASC").
		WillReturnRows(rows)

	queue, err := repo.ListAwaiting(context.Background())
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "av-1", queue[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerificationRepositoryCreatePast(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewVerificationRepository(db)

	mock.ExpectExec("INSERT INTO past_jobs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	awaiting := &models.AwaitingVerificationJob{
		ID:                "av-1",
		JobID:             "job-1",
		TutorID:           "tutor-1",
		TuteeID:           "tutee-1",
		SubjectDescriptor: models.SubjectDescriptor{Name: "Biology", Type: "IB", Grade: "11"},
		RecordingURL:      "https://rec.example/1",
	}
	past, err := models.NewPastJob(awaiting, "admin-1", 1.5, time.Now())
	require.NoError(t, err)

	err = repo.CreatePast(context.Background(), past)
	require.NoError(t, err)
	assert.NotEmpty(t, past.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
