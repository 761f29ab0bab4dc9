package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const awaitingColumns = "id, job_id, opportunity_id, tutor_id, tutee_id, tutor_name, tutee_name, subject_name, subject_type, subject_grade, language, location, scheduled_time, duration_minutes, recording_url, status, created_at"

const pastJobColumns = "id, job_id, tutor_id, tutee_id, tutor_name, tutee_name, subject_name, subject_type, subject_grade, language, location, scheduled_time, duration_minutes, recording_url, verified_by, verified_at, awarded_volunteer_hours, created_at"

// VerificationRepository manages the verification queue and the past-job
// archive.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository constructs a VerificationRepository.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// CreateAwaiting inserts a job into the admin verification queue.
func (r *VerificationRepository) CreateAwaiting(ctx context.Context, awaiting *models.AwaitingVerificationJob) error {
	if awaiting.ID == "" {
		awaiting.ID = uuid.NewString()
	}
	if awaiting.CreatedAt.IsZero() {
		awaiting.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO awaiting_verification_jobs (id, job_id, opportunity_id, tutor_id, tutee_id, tutor_name, tutee_name, subject_name, subject_type, subject_grade, language, location, scheduled_time, duration_minutes, recording_url, status, created_at)
		VALUES (:id, :job_id, :opportunity_id, :tutor_id, :tutee_id, :tutor_name, :tutee_name, :subject_name, :subject_type, :subject_grade, :language, :location, :scheduled_time, :duration_minutes, :recording_url, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, awaiting); err != nil {
		return fmt.Errorf("create awaiting verification job: %w", err)
	}
	return nil
}

// FindAwaitingByID fetches a queue entry by ID.
func (r *VerificationRepository) FindAwaitingByID(ctx context.Context, id string) (*models.AwaitingVerificationJob, error) {
	query := fmt.Sprintf("SELECT %s FROM awaiting_verification_jobs WHERE id = $1", awaitingColumns)
	var awaiting models.AwaitingVerificationJob
	if err := r.db.GetContext(ctx, &awaiting, query, id); err != nil {
		return nil, err
	}
	return &awaiting, nil
}

// ListAwaiting returns the verification queue, oldest first so admins
// work through it in arrival order.
func (r *VerificationRepository) ListAwaiting(ctx context.Context) ([]models.AwaitingVerificationJob, error) {
	query := fmt.Sprintf("SELECT %s FROM awaiting_verification_jobs ORDER BY created_at ASC", awaitingColumns)
	var queue []models.AwaitingVerificationJob
	if err := r.db.SelectContext(ctx, &queue, query); err != nil {
		return nil, fmt.Errorf("list awaiting verification jobs: %w", err)
	}
	return queue, nil
}

// ListAwaitingByTutor returns a tutor's pending verifications.
func (r *VerificationRepository) ListAwaitingByTutor(ctx context.Context, tutorID string) ([]models.AwaitingVerificationJob, error) {
	query := fmt.Sprintf("SELECT %s FROM awaiting_verification_jobs WHERE tutor_id = $1 ORDER BY created_at DESC", awaitingColumns)
	var queue []models.AwaitingVerificationJob
	if err := r.db.SelectContext(ctx, &queue, query, tutorID); err != nil {
		return nil, fmt.Errorf("list awaiting verification jobs by tutor: %w", err)
	}
	return queue, nil
}

// DeleteAwaiting removes a queue entry once it has been archived.
func (r *VerificationRepository) DeleteAwaiting(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM awaiting_verification_jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete awaiting verification job: %w", err)
	}
	return nil
}

// CreatePast archives a verified job.
func (r *VerificationRepository) CreatePast(ctx context.Context, past *models.PastJob) error {
	if past.ID == "" {
		past.ID = uuid.NewString()
	}
	if past.CreatedAt.IsZero() {
		past.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO past_jobs (id, job_id, tutor_id, tutee_id, tutor_name, tutee_name, subject_name, subject_type, subject_grade, language, location, scheduled_time, duration_minutes, recording_url, verified_by, verified_at, awarded_volunteer_hours, created_at)
		VALUES (:id, :job_id, :tutor_id, :tutee_id, :tutor_name, :tutee_name, :subject_name, :subject_type, :subject_grade, :language, :location, :scheduled_time, :duration_minutes, :recording_url, :verified_by, :verified_at, :awarded_volunteer_hours, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, past); err != nil {
		return fmt.Errorf("create past job: %w", err)
	}
	return nil
}

// ListPast returns archived jobs, most recently verified first.
func (r *VerificationRepository) ListPast(ctx context.Context, limit int) ([]models.PastJob, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := fmt.Sprintf("SELECT %s FROM past_jobs ORDER BY verified_at DESC LIMIT %d", pastJobColumns, limit)
	var past []models.PastJob
	if err := r.db.SelectContext(ctx, &past, query); err != nil {
		return nil, fmt.Errorf("list past jobs: %w", err)
	}
	return past, nil
}

// ListPastByTutor returns a tutor's verified session history.
func (r *VerificationRepository) ListPastByTutor(ctx context.Context, tutorID string) ([]models.PastJob, error) {
	query := fmt.Sprintf("SELECT %s FROM past_jobs WHERE tutor_id = $1 ORDER BY verified_at DESC", pastJobColumns)
	var past []models.PastJob
	if err := r.db.SelectContext(ctx, &past, query, tutorID); err != nil {
		return nil, fmt.Errorf("list past jobs by tutor: %w", err)
	}
	return past, nil
}
