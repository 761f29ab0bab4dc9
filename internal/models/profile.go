package models

import (
	"strings"
	"time"
)

// TutorStatus gates which tutors may claim opportunities.
type TutorStatus string

const (
	TutorActive    TutorStatus = "active"
	TutorPending   TutorStatus = "pending"
	TutorSuspended TutorStatus = "suspended"
)

// Tutor represents a volunteer tutor profile.
type Tutor struct {
	ID             string      `db:"id" json:"id"`
	AuthID         string      `db:"auth_id" json:"auth_id"`
	FirstName      string      `db:"first_name" json:"first_name"`
	LastName       string      `db:"last_name" json:"last_name"`
	Email          string      `db:"email" json:"email"`
	Status         TutorStatus `db:"status" json:"status"`
	VolunteerHours float64     `db:"volunteer_hours" json:"volunteer_hours"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name for email bodies and denormalization.
func (t *Tutor) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// Tutee represents a student requesting tutoring.
type Tutee struct {
	ID        string    `db:"id" json:"id"`
	AuthID    string    `db:"auth_id" json:"auth_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the display name for email bodies and denormalization.
func (t *Tutee) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// TuteeSummary is the embedded tutee view on listings shown to tutors.
type TuteeSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Admin represents a school administrator.
type Admin struct {
	ID        string    `db:"id" json:"id"`
	AuthID    string    `db:"auth_id" json:"auth_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the display name used in approval notifications.
func (a *Admin) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
