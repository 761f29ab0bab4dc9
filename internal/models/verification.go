package models

import (
	"fmt"
	"time"
)

// StatusAwaitingVerification is the single status an awaiting job carries.
const StatusAwaitingVerification = "awaiting_admin_verification"

// AwaitingVerificationJob is a completed-but-unverified session pending
// admin sign-off. Tutor and tutee names are denormalized at completion
// time because the profiles may change or disappear before verification.
type AwaitingVerificationJob struct {
	ID            string `db:"id" json:"id"`
	JobID         string `db:"job_id" json:"job_id"`
	OpportunityID string `db:"opportunity_id" json:"opportunity_id"`
	TutorID       string `db:"tutor_id" json:"tutor_id"`
	TuteeID       string `db:"tutee_id" json:"tutee_id"`
	TutorName     string `db:"tutor_name" json:"tutor_name"`
	TuteeName     string `db:"tutee_name" json:"tutee_name"`
	SubjectDescriptor
	Language        *string    `db:"language" json:"language,omitempty"`
	Location        *string    `db:"location" json:"location,omitempty"`
	ScheduledTime   *time.Time `db:"scheduled_time" json:"scheduled_time,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	RecordingURL    string     `db:"recording_url" json:"recording_url"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// NewAwaitingVerificationJob carries a completed Job's descriptive fields
// forward. The names may be blank when the profile lookups fail; that is
// tolerated rather than failing the completion.
func NewAwaitingVerificationJob(job *Job, tutorName, tuteeName, recordingURL string) *AwaitingVerificationJob {
	return &AwaitingVerificationJob{
		JobID:             job.ID,
		OpportunityID:     job.OpportunityID,
		TutorID:           job.TutorID,
		TuteeID:           job.TuteeID,
		TutorName:         tutorName,
		TuteeName:         tuteeName,
		SubjectDescriptor: job.SubjectDescriptor,
		Language:          job.Language,
		Location:          job.Location,
		ScheduledTime:     job.ScheduledTime,
		DurationMinutes:   job.DurationMinutes,
		RecordingURL:      recordingURL,
		Status:            StatusAwaitingVerification,
	}
}

// PastJob is the immutable archival record of a verified, hour-credited
// session. Rows are insert-only and never deleted.
type PastJob struct {
	ID        string `db:"id" json:"id"`
	JobID     string `db:"job_id" json:"job_id"`
	TutorID   string `db:"tutor_id" json:"tutor_id"`
	TuteeID   string `db:"tutee_id" json:"tutee_id"`
	TutorName string `db:"tutor_name" json:"tutor_name"`
	TuteeName string `db:"tutee_name" json:"tutee_name"`
	SubjectDescriptor
	Language              *string    `db:"language" json:"language,omitempty"`
	Location              *string    `db:"location" json:"location,omitempty"`
	ScheduledTime         *time.Time `db:"scheduled_time" json:"scheduled_time,omitempty"`
	DurationMinutes       *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	RecordingURL          string     `db:"recording_url" json:"recording_url"`
	VerifiedBy            string     `db:"verified_by" json:"verified_by"`
	VerifiedAt            time.Time  `db:"verified_at" json:"verified_at"`
	AwardedVolunteerHours float64    `db:"awarded_volunteer_hours" json:"awarded_volunteer_hours"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
}

// NewPastJob archives an awaiting job once an admin signs off. Awarded
// hours must be non-negative.
func NewPastJob(awaiting *AwaitingVerificationJob, adminID string, awardedHours float64, verifiedAt time.Time) (*PastJob, error) {
	if awardedHours < 0 {
		return nil, fmt.Errorf("awarded hours must be non-negative")
	}
	if adminID == "" {
		return nil, fmt.Errorf("past job requires a verifying admin")
	}
	return &PastJob{
		JobID:                 awaiting.JobID,
		TutorID:               awaiting.TutorID,
		TuteeID:               awaiting.TuteeID,
		TutorName:             awaiting.TutorName,
		TuteeName:             awaiting.TuteeName,
		SubjectDescriptor:     awaiting.SubjectDescriptor,
		Language:              awaiting.Language,
		Location:              awaiting.Location,
		ScheduledTime:         awaiting.ScheduledTime,
		DurationMinutes:       awaiting.DurationMinutes,
		RecordingURL:          awaiting.RecordingURL,
		VerifiedBy:            adminID,
		VerifiedAt:            verifiedAt,
		AwardedVolunteerHours: awardedHours,
	}, nil
}
