package models

import (
	"fmt"
	"time"
)

// OpportunityStatus is the lifecycle state of an open tutoring request.
type OpportunityStatus string

const (
	OpportunityOpen      OpportunityStatus = "open"
	OpportunityCancelled OpportunityStatus = "cancelled"
)

// OpportunityPriority orders the open listing shown to tutors.
type OpportunityPriority string

const (
	PriorityNormal OpportunityPriority = "normal"
	PriorityHigh   OpportunityPriority = "high"
)

// Opportunity is an open, unclaimed tutoring request. It exists only while
// unclaimed: the accept transition deletes the row and supersedes it with a
// Job carrying a snapshot of these fields.
type Opportunity struct {
	ID                string              `db:"id" json:"id"`
	TuteeID           string              `db:"tutee_id" json:"tutee_id"`
	SubjectDescriptor
	Language           *string             `db:"language" json:"language,omitempty"`
	LocationPreference *string             `db:"location_preference" json:"location_preference,omitempty"`
	AdditionalNotes    *string             `db:"additional_notes" json:"additional_notes,omitempty"`
	Status             OpportunityStatus   `db:"status" json:"status"`
	Priority           OpportunityPriority `db:"priority" json:"priority"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
}

// OpportunityListing is an Opportunity joined with the tutee summary for
// the tutor-facing open listing.
type OpportunityListing struct {
	Opportunity
	Tutee TuteeSummary `json:"tutee"`
}

// NewOpportunity validates required fields and builds an open opportunity.
func NewOpportunity(tuteeID string, subject SubjectDescriptor, priority OpportunityPriority) (*Opportunity, error) {
	if tuteeID == "" {
		return nil, fmt.Errorf("opportunity requires a tutee")
	}
	if !subject.Complete() {
		return nil, fmt.Errorf("opportunity requires a complete subject descriptor")
	}
	if priority != PriorityHigh {
		priority = PriorityNormal
	}
	return &Opportunity{
		TuteeID:           tuteeID,
		SubjectDescriptor: subject,
		Status:            OpportunityOpen,
		Priority:          priority,
	}, nil
}
