package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const jobColumns = "id, opportunity_id, opportunity_snapshot, tutor_id, tutee_id, subject_name, subject_type, subject_grade, language, location, additional_notes, status, tutee_availability, desired_duration_minutes, scheduled_time, duration_minutes, created_at, updated_at"

// JobRepository manages persistence for active tutoring jobs.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job row.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	const query = `INSERT INTO tutoring_jobs (id, opportunity_id, opportunity_snapshot, tutor_id, tutee_id, subject_name, subject_type, subject_grade, language, location, additional_notes, status, tutee_availability, desired_duration_minutes, scheduled_time, duration_minutes, created_at, updated_at)
		VALUES (:id, :opportunity_id, :opportunity_snapshot, :tutor_id, :tutee_id, :subject_name, :subject_type, :subject_grade, :language, :location, :additional_notes, :status, :tutee_availability, :desired_duration_minutes, :scheduled_time, :duration_minutes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// FindByID fetches a job by ID.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_jobs WHERE id = $1", jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByTutor returns a tutor's active jobs, newest first.
func (r *JobRepository) ListByTutor(ctx context.Context, tutorID string) ([]models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_jobs WHERE tutor_id = $1 ORDER BY created_at DESC", jobColumns)
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, tutorID); err != nil {
		return nil, fmt.Errorf("list jobs by tutor: %w", err)
	}
	return jobs, nil
}

// ListByTutee returns a tutee's active jobs, newest first.
func (r *JobRepository) ListByTutee(ctx context.Context, tuteeID string) ([]models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_jobs WHERE tutee_id = $1 ORDER BY created_at DESC", jobColumns)
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, tuteeID); err != nil {
		return nil, fmt.Errorf("list jobs by tutee: %w", err)
	}
	return jobs, nil
}

// ListAll returns recent jobs for the admin console.
func (r *JobRepository) ListAll(ctx context.Context, limit int) ([]models.Job, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM tutoring_jobs ORDER BY created_at DESC LIMIT %d", jobColumns, limit)
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListScheduledBetween returns jobs whose session falls inside the window.
// Used by the reminder sweep.
func (r *JobRepository) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Job, error) {
	query := fmt.Sprintf("SELECT %s FROM tutoring_jobs WHERE status = $1 AND scheduled_time >= $2 AND scheduled_time < $3 ORDER BY scheduled_time ASC", jobColumns)
	var jobs []models.Job
	if err := r.db.SelectContext(ctx, &jobs, query, models.JobScheduled, from, to); err != nil {
		return nil, fmt.Errorf("list scheduled jobs: %w", err)
	}
	return jobs, nil
}

// Update persists mutable job fields.
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()

	const query = `UPDATE tutoring_jobs SET
			status = :status,
			tutee_availability = :tutee_availability,
			desired_duration_minutes = :desired_duration_minutes,
			scheduled_time = :scheduled_time,
			duration_minutes = :duration_minutes,
			updated_at = :updated_at
		WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete removes a job row.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tutoring_jobs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
