package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const recordingColumns = "id, job_id, recording_url, file_path, duration_seconds, volunteer_hours, status, created_at, updated_at"

// RecordingRepository manages session recording links.
type RecordingRepository struct {
	db *sqlx.DB
}

// NewRecordingRepository constructs a RecordingRepository.
func NewRecordingRepository(db *sqlx.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// Upsert writes the recording for a job, replacing any earlier one. A job
// holds at most one recording.
func (r *RecordingRepository) Upsert(ctx context.Context, rec *models.SessionRecording) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	const query = `INSERT INTO session_recordings (id, job_id, recording_url, file_path, duration_seconds, volunteer_hours, status, created_at, updated_at)
		VALUES (:id, :job_id, :recording_url, :file_path, :duration_seconds, :volunteer_hours, :status, :created_at, :updated_at)
		ON CONFLICT (job_id) DO UPDATE SET recording_url = EXCLUDED.recording_url, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("upsert session recording: %w", err)
	}
	return nil
}

// FindByJobID fetches the recording attached to a job.
func (r *RecordingRepository) FindByJobID(ctx context.Context, jobID string) (*models.SessionRecording, error) {
	query := fmt.Sprintf("SELECT %s FROM session_recordings WHERE job_id = $1", recordingColumns)
	var rec models.SessionRecording
	if err := r.db.GetContext(ctx, &rec, query, jobID); err != nil {
		return nil, err
	}
	return &rec, nil
}
