package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// JobStatus is the scheduling sub-state of an active tutor/tutee pairing.
type JobStatus string

const (
	JobPendingTuteeScheduling JobStatus = "pending_tutee_scheduling"
	JobPendingTutorScheduling JobStatus = "pending_tutor_scheduling"
	JobScheduled              JobStatus = "scheduled"
	JobCancelled              JobStatus = "cancelled"
)

const (
	// MinSessionMinutes and MaxSessionMinutes bound session length; lengths
	// must also be a multiple of SessionStepMinutes.
	MinSessionMinutes  = 60
	MaxSessionMinutes  = 180
	SessionStepMinutes = 30
)

// ValidSessionMinutes reports whether n is an allowed session length.
func ValidSessionMinutes(n int) bool {
	return n >= MinSessionMinutes && n <= MaxSessionMinutes && n%SessionStepMinutes == 0
}

// Availability maps a calendar date ("2006-01-02") to declared
// "HH:MM-HH:MM" time ranges. Stored as JSONB.
type Availability map[string][]string

// Value implements driver.Valuer.
func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("availability: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, a)
}

// ParseTimeRange parses a "HH:MM-HH:MM" token into start/end minutes of
// day, requiring end strictly after start.
func ParseTimeRange(token string) (startMin, endMin int, err error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time range %q", token)
	}
	startMin, err = parseClock(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time range %q: %w", token, err)
	}
	endMin, err = parseClock(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time range %q: %w", token, err)
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("invalid time range %q: end must be after start", token)
	}
	return startMin, endMin, nil
}

func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid HH:MM %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", s)
	}
	return h*60 + m, nil
}

// Contains reports whether [startMin, startMin+durationMin) fits entirely
// inside one declared range for the given date. When no ranges were
// declared for that date the interval is unconstrained and Contains
// returns true.
func (a Availability) Contains(date string, startMin, durationMin int) bool {
	ranges := a[date]
	if len(ranges) == 0 {
		return true
	}
	end := startMin + durationMin
	for _, token := range ranges {
		rs, re, err := ParseTimeRange(token)
		if err != nil {
			continue
		}
		if startMin >= rs && end <= re {
			return true
		}
	}
	return false
}

// OpportunitySnapshot is the immutable copy of an Opportunity's fields
// embedded on the Job at accept time. The source row is deleted, so the
// snapshot is the only surviving record; it is copied once and never
// re-fetched.
type OpportunitySnapshot struct {
	OpportunityID      string              `json:"opportunity_id"`
	TuteeID            string              `json:"tutee_id"`
	SubjectName        string              `json:"subject_name"`
	SubjectType        string              `json:"subject_type"`
	SubjectGrade       string              `json:"subject_grade"`
	Language           *string             `json:"language,omitempty"`
	LocationPreference *string             `json:"location_preference,omitempty"`
	AdditionalNotes    *string             `json:"additional_notes,omitempty"`
	Priority           OpportunityPriority `json:"priority"`
	CreatedAt          time.Time           `json:"created_at"`
}

// SnapshotOf copies an Opportunity into its embedded snapshot form.
func SnapshotOf(opp *Opportunity) OpportunitySnapshot {
	return OpportunitySnapshot{
		OpportunityID:      opp.ID,
		TuteeID:            opp.TuteeID,
		SubjectName:        opp.Name,
		SubjectType:        opp.Type,
		SubjectGrade:       opp.Grade,
		Language:           opp.Language,
		LocationPreference: opp.LocationPreference,
		AdditionalNotes:    opp.AdditionalNotes,
		Priority:           opp.Priority,
		CreatedAt:          opp.CreatedAt,
	}
}

// Value implements driver.Valuer.
func (s OpportunitySnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *OpportunitySnapshot) Scan(src interface{}) error {
	if src == nil {
		*s = OpportunitySnapshot{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("opportunity snapshot: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, s)
}

// Job is an active tutor/tutee pairing derived from an accepted
// Opportunity.
type Job struct {
	ID            string              `db:"id" json:"id"`
	OpportunityID string              `db:"opportunity_id" json:"opportunity_id"`
	Snapshot      OpportunitySnapshot `db:"opportunity_snapshot" json:"opportunity_snapshot"`
	TutorID       string              `db:"tutor_id" json:"tutor_id"`
	TuteeID       string              `db:"tutee_id" json:"tutee_id"`
	SubjectDescriptor
	Language               *string      `db:"language" json:"language,omitempty"`
	Location               *string      `db:"location" json:"location,omitempty"`
	AdditionalNotes        *string      `db:"additional_notes" json:"additional_notes,omitempty"`
	Status                 JobStatus    `db:"status" json:"status"`
	TuteeAvailability      Availability `db:"tutee_availability" json:"tutee_availability,omitempty"`
	DesiredDurationMinutes *int         `db:"desired_duration_minutes" json:"desired_duration_minutes,omitempty"`
	ScheduledTime          *time.Time   `db:"scheduled_time" json:"scheduled_time,omitempty"`
	DurationMinutes        *int         `db:"duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt              time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time    `db:"updated_at" json:"updated_at"`
}

// NewJobFromOpportunity builds a Job superseding an accepted Opportunity,
// copying the snapshot at transition time.
func NewJobFromOpportunity(opp *Opportunity, tutorID string) (*Job, error) {
	if tutorID == "" {
		return nil, fmt.Errorf("job requires a tutor")
	}
	if opp == nil || opp.TuteeID == "" {
		return nil, fmt.Errorf("job requires an opportunity with a tutee")
	}
	return &Job{
		OpportunityID:     opp.ID,
		Snapshot:          SnapshotOf(opp),
		TutorID:           tutorID,
		TuteeID:           opp.TuteeID,
		SubjectDescriptor: opp.SubjectDescriptor,
		Language:          opp.Language,
		Location:          opp.LocationPreference,
		AdditionalNotes:   opp.AdditionalNotes,
		Status:            JobPendingTuteeScheduling,
	}, nil
}

// RecreateOpportunity reconstructs an open Opportunity from the job's
// embedded snapshot, falling back to direct job fields when a snapshot
// field is absent. It fails when the tutee or subject descriptor cannot be
// recovered, since a valid opportunity cannot be built without them.
func (j *Job) RecreateOpportunity() (*Opportunity, error) {
	tuteeID := j.Snapshot.TuteeID
	if tuteeID == "" {
		tuteeID = j.TuteeID
	}
	subject := SubjectDescriptor{
		Name:  firstNonEmpty(j.Snapshot.SubjectName, j.Name),
		Type:  firstNonEmpty(j.Snapshot.SubjectType, j.Type),
		Grade: firstNonEmpty(j.Snapshot.SubjectGrade, j.Grade),
	}
	if tuteeID == "" || !subject.Complete() {
		return nil, fmt.Errorf("job %s: snapshot insufficient to recreate opportunity", j.ID)
	}

	opp, err := NewOpportunity(tuteeID, subject, j.Snapshot.Priority)
	if err != nil {
		return nil, err
	}
	opp.Language = coalesce(j.Snapshot.Language, j.Language)
	opp.LocationPreference = coalesce(j.Snapshot.LocationPreference, j.Location)
	opp.AdditionalNotes = coalesce(j.Snapshot.AdditionalNotes, j.AdditionalNotes)
	return opp, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return v
		}
	}
	return nil
}
