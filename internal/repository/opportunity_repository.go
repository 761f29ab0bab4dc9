package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const opportunityColumns = "id, tutee_id, subject_name, subject_type, subject_grade, language, location_preference, additional_notes, status, priority, created_at"

// OpportunityRepository manages persistence for tutoring opportunities.
type OpportunityRepository struct {
	db *sqlx.DB
}

// NewOpportunityRepository constructs an OpportunityRepository.
func NewOpportunityRepository(db *sqlx.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// Create inserts a new opportunity row.
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	if opp.ID == "" {
		opp.ID = uuid.NewString()
	}
	if opp.CreatedAt.IsZero() {
		opp.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO tutoring_opportunities (id, tutee_id, subject_name, subject_type, subject_grade, language, location_preference, additional_notes, status, priority, created_at)
		VALUES (:id, :tutee_id, :subject_name, :subject_type, :subject_grade, :language, :location_preference, :additional_notes, :status, :priority, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, opp); err != nil {
		return fmt.Errorf("create opportunity: %w", err)
	}
	return nil
}

// FindByID fetches an opportunity by ID.
func (r *OpportunityRepository) FindByID(ctx context.Context, id string) (*models.Opportunity, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_opportunities WHERE id = $1", opportunityColumns)
	var opp models.Opportunity
	if err := r.db.GetContext(ctx, &opp, query, id); err != nil {
		return nil, err
	}
	return &opp, nil
}

type openOpportunityRow struct {
	models.Opportunity
	TuteeFirstName string `db:"tutee_first_name"`
	TuteeLastName  string `db:"tutee_last_name"`
}

// ListOpen returns all open opportunities with a tutee summary embedded,
// high priority first, oldest first within a priority band.
func (r *OpportunityRepository) ListOpen(ctx context.Context) ([]models.OpportunityListing, error) {
	const query = `SELECT o.id, o.tutee_id, o.subject_name, o.subject_type, o.subject_grade, o.language, o.location_preference, o.additional_notes, o.status, o.priority, o.created_at,
			t.first_name AS tutee_first_name, t.last_name AS tutee_last_name
		FROM tutoring_opportunities o
		JOIN tutees t ON t.id = o.tutee_id
		WHERE o.status = 'open'
		ORDER BY CASE WHEN o.priority = 'high' THEN 0 ELSE 1 END, o.created_at ASC`

	var rows []openOpportunityRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list open opportunities: %w", err)
	}

	listings := make([]models.OpportunityListing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, models.OpportunityListing{
			Opportunity: row.Opportunity,
			Tutee: models.TuteeSummary{
				ID:        row.Opportunity.TuteeID,
				FirstName: row.TuteeFirstName,
				LastName:  row.TuteeLastName,
			},
		})
	}
	return listings, nil
}

// ListByTutee returns a tutee's own opportunities, newest first. Cancelled
// rows are included for audit; open listings exclude them via ListOpen.
func (r *OpportunityRepository) ListByTutee(ctx context.Context, tuteeID string) ([]models.Opportunity, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_opportunities WHERE tutee_id = $1 ORDER BY created_at DESC", opportunityColumns)
	var opps []models.Opportunity
	if err := r.db.SelectContext(ctx, &opps, query, tuteeID); err != nil {
		return nil, fmt.Errorf("list opportunities by tutee: %w", err)
	}
	return opps, nil
}

// ListAll returns recent opportunities for the admin console.
func (r *OpportunityRepository) ListAll(ctx context.Context, limit int) ([]models.Opportunity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM tutoring_opportunities ORDER BY created_at DESC LIMIT %d", opportunityColumns, limit)
	var opps []models.Opportunity
	if err := r.db.SelectContext(ctx, &opps, query); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	return opps, nil
}

// CancelOwned marks an open opportunity cancelled when it belongs to the
// given tutee. Returns false when no open row matched.
func (r *OpportunityRepository) CancelOwned(ctx context.Context, id, tuteeID string) (bool, error) {
	const query = `UPDATE tutoring_opportunities SET status = 'cancelled' WHERE id = $1 AND tutee_id = $2 AND status = 'open'`
	res, err := r.db.ExecContext(ctx, query, id, tuteeID)
	if err != nil {
		return false, fmt.Errorf("cancel opportunity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel opportunity: %w", err)
	}
	return affected == 1, nil
}

// DeleteIfOpen removes the row only while it is still open. The affected
// row count is the claim guard: a concurrent accept that already consumed
// the opportunity leaves nothing to delete and the caller must compensate.
func (r *OpportunityRepository) DeleteIfOpen(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM tutoring_opportunities WHERE id = $1 AND status = 'open'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete opportunity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete opportunity: %w", err)
	}
	return affected == 1, nil
}
