package models

import (
	"strings"
	"time"
)

// SessionRecording ties an external recording URL to a Job. A job may not
// transition to completed without one. At most one recording exists per
// job (upsert by job id).
type SessionRecording struct {
	ID           string `db:"id" json:"id"`
	JobID        string `db:"job_id" json:"job_id"`
	RecordingURL string `db:"recording_url" json:"recording_url"`

	// Legacy upload fields kept for older rows.
	FilePath        *string  `db:"file_path" json:"file_path,omitempty"`
	DurationSeconds *int     `db:"duration_seconds" json:"duration_seconds,omitempty"`
	VolunteerHours  *float64 `db:"volunteer_hours" json:"volunteer_hours,omitempty"`
	Status          *string  `db:"status" json:"status,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ValidRecordingURL requires an absolute http(s) URL.
func ValidRecordingURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")
}
