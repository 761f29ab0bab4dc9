package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
)

func TestJobRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec("INSERT INTO tutoring_jobs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	opp := &models.Opportunity{
		ID:                "opp-1",
		TuteeID:           "tutee-1",
		SubjectDescriptor: models.SubjectDescriptor{Name: "Physics", Type: "AP", Grade: "12"},
		Status:            models.OpportunityOpen,
		Priority:          models.PriorityNormal,
		CreatedAt:         time.Now(),
	}
	job, err := models.NewJobFromOpportunity(opp, "tutor-1")
	require.NoError(t, err)

	err = repo.Create(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryListScheduledBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	scheduled := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "opportunity_id", "tutor_id", "tutee_id", "subject_name", "subject_type", "subject_grade", "status", "scheduled_time", "created_at", "updated_at"}).
		AddRow("job-1", "opp-1", "tutor-1", "tutee-1", "Physics", "AP", "12", "scheduled", scheduled, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM tutoring_jobs WHERE status = \\$1 AND scheduled_time >= \\$2 AND scheduled_time < \\$3").
		WithArgs(models.JobScheduled, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	jobs, err := repo.ListScheduledBetween(context.Background(), scheduled.Add(-time.Hour), scheduled.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutoring_jobs WHERE id = $1")).
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "job-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
