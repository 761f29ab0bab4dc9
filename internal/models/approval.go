package models

import "time"

// ApprovalStatus is the resolution of a subject approval.
type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// SubjectApproval grants a tutor permission to act on opportunities and
// jobs of a subject class. Matching is by exact type and grade with
// substring containment on the name (see SubjectDescriptor.NameMatches).
type SubjectApproval struct {
	ID      string `db:"id" json:"id"`
	TutorID string `db:"tutor_id" json:"tutor_id"`
	SubjectDescriptor
	Status     ApprovalStatus `db:"status" json:"status"`
	ApprovedBy *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

// CertificationRequest is a tutor-initiated request to be certified for a
// subject. Admins resolve it into a SubjectApproval (approve) or delete it
// (reject); it is never updated in place.
type CertificationRequest struct {
	ID        string `db:"id" json:"id"`
	TutorID   string `db:"tutor_id" json:"tutor_id"`
	TutorName string `db:"tutor_name" json:"tutor_name"`
	SubjectDescriptor
	TutorMark *string   `db:"tutor_mark" json:"tutor_mark,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
