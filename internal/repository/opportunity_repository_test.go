package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerlearn/tutoring-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestOpportunityRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectExec("INSERT INTO tutoring_opportunities").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	opp, err := models.NewOpportunity("tutee-1", models.SubjectDescriptor{Name: "Math", Type: "IB", Grade: "11"}, models.PriorityNormal)
	require.NoError(t, err)

	err = repo.Create(context.Background(), opp)
	require.NoError(t, err)
	assert.NotEmpty(t, opp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepositoryListOpenOrdersByPriority(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "tutee_id", "subject_name", "subject_type", "subject_grade", "language", "location_preference", "additional_notes", "status", "priority", "created_at", "tutee_first_name", "tutee_last_name"}).
		AddRow("opp-1", "tutee-1", "Math", "IB", "11", nil, nil, nil, "open", "high", time.Now(), "Ada", "Lovelace")
	mock.ExpectQuery("SELECT o.id, o.tutee_id").WillReturnRows(rows)

	listings, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "opp-1", listings[0].Opportunity.ID)
	assert.Equal(t, "tutee-1", listings[0].Tutee.ID)
	assert.Equal(t, "Ada", listings[0].Tutee.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepositoryCancelOwned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tutoring_opportunities SET status = 'cancelled' WHERE id = $1 AND tutee_id = $2 AND status = 'open'")).
		WithArgs("opp-1", "tutee-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.CancelOwned(context.Background(), "opp-1", "tutee-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpportunityRepositoryDeleteIfOpenAlreadyClaimed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOpportunityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tutoring_opportunities WHERE id = $1 AND status = 'open'")).
		WithArgs("opp-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.DeleteIfOpen(context.Background(), "opp-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
