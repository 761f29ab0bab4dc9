package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

// CommunicationRepository logs outbound notifications per job.
type CommunicationRepository struct {
	db *sqlx.DB
}

// NewCommunicationRepository constructs a CommunicationRepository.
func NewCommunicationRepository(db *sqlx.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

// Create appends a communication log entry.
func (r *CommunicationRepository) Create(ctx context.Context, comm *models.Communication) error {
	if comm.ID == "" {
		comm.ID = uuid.NewString()
	}
	if comm.CreatedAt.IsZero() {
		comm.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO communications (id, job_id, type, recipient, subject, content, status, created_at)
		VALUES (:id, :job_id, :type, :recipient, :subject, :content, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comm); err != nil {
		return fmt.Errorf("create communication: %w", err)
	}
	return nil
}

// ListByJob returns a job's communication history, oldest first.
func (r *CommunicationRepository) ListByJob(ctx context.Context, jobID string) ([]models.Communication, error) {
	const query = `SELECT id, job_id, type, recipient, subject, content, status, created_at FROM communications WHERE job_id = $1 ORDER BY created_at ASC`
	var comms []models.Communication
	if err := r.db.SelectContext(ctx, &comms, query, jobID); err != nil {
		return nil, fmt.Errorf("list communications: %w", err)
	}
	return comms, nil
}

// DeleteByJobID clears a job's communication log when the job terminates.
func (r *CommunicationRepository) DeleteByJobID(ctx context.Context, jobID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM communications WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("delete communications: %w", err)
	}
	return nil
}
