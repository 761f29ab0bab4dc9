package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const tutorColumns = "id, auth_id, first_name, last_name, email, status, volunteer_hours, created_at, updated_at"

const tuteeColumns = "id, auth_id, first_name, last_name, email, created_at, updated_at"

const adminColumns = "id, auth_id, first_name, last_name, email, created_at"

// ProfileRepository reads tutor, tutee and admin profiles. Profiles are
// provisioned by the identity system; this service only updates tutor
// status and volunteer hours.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindTutorByAuthID resolves the tutor profile behind an auth identity.
func (r *ProfileRepository) FindTutorByAuthID(ctx context.Context, authID string) (*models.Tutor, error) {
	query := fmt.Sprintf("SELECT %s FROM tutors WHERE auth_id = $1", tutorColumns)
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, query, authID); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// FindTutorByID fetches a tutor profile by ID.
func (r *ProfileRepository) FindTutorByID(ctx context.Context, id string) (*models.Tutor, error) {
	query := fmt.Sprintf("SELECT %s FROM tutors WHERE id = $1", tutorColumns)
	var tutor models.Tutor
	if err := r.db.GetContext(ctx, &tutor, query, id); err != nil {
		return nil, err
	}
	return &tutor, nil
}

// ListTutors returns tutor profiles, most hours first.
func (r *ProfileRepository) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	query := fmt.Sprintf("SELECT %s FROM tutors ORDER BY volunteer_hours DESC, last_name ASC", tutorColumns)
	var tutors []models.Tutor
	if err := r.db.SelectContext(ctx, &tutors, query); err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}

// UpdateTutorStatus changes a tutor's status. Returns false when the
// tutor does not exist.
func (r *ProfileRepository) UpdateTutorStatus(ctx context.Context, tutorID string, status models.TutorStatus) (bool, error) {
	const query = `UPDATE tutors SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, tutorID, status, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update tutor status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update tutor status: %w", err)
	}
	return affected == 1, nil
}

// AddVolunteerHours credits hours atomically in the database so that
// concurrent verifications never lose an increment.
func (r *ProfileRepository) AddVolunteerHours(ctx context.Context, tutorID string, hours float64) error {
	const query = `UPDATE tutors SET volunteer_hours = volunteer_hours + $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, tutorID, hours, time.Now().UTC()); err != nil {
		return fmt.Errorf("add volunteer hours: %w", err)
	}
	return nil
}

// FindTuteeByAuthID resolves the tutee profile behind an auth identity.
func (r *ProfileRepository) FindTuteeByAuthID(ctx context.Context, authID string) (*models.Tutee, error) {
	query := fmt.Sprintf("SELECT %s FROM tutees WHERE auth_id = $1", tuteeColumns)
	var tutee models.Tutee
	if err := r.db.GetContext(ctx, &tutee, query, authID); err != nil {
		return nil, err
	}
	return &tutee, nil
}

// FindTuteeByID fetches a tutee profile by ID.
func (r *ProfileRepository) FindTuteeByID(ctx context.Context, id string) (*models.Tutee, error) {
	query := fmt.Sprintf("SELECT %s FROM tutees WHERE id = $1", tuteeColumns)
	var tutee models.Tutee
	if err := r.db.GetContext(ctx, &tutee, query, id); err != nil {
		return nil, err
	}
	return &tutee, nil
}

// FindAdminByAuthID resolves the admin profile behind an auth identity.
func (r *ProfileRepository) FindAdminByAuthID(ctx context.Context, authID string) (*models.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admins WHERE auth_id = $1", adminColumns)
	var admin models.Admin
	if err := r.db.GetContext(ctx, &admin, query, authID); err != nil {
		return nil, err
	}
	return &admin, nil
}
