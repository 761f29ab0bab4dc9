package models

import "time"

// Communication logs an outbound notification tied to a job. Rows are an
// audit side-effect: cleanup on job termination is best-effort and a
// failed write never blocks the notification itself.
type Communication struct {
	ID        string    `db:"id" json:"id"`
	JobID     string    `db:"job_id" json:"job_id"`
	Type      string    `db:"type" json:"type"`
	Recipient string    `db:"recipient" json:"recipient"`
	Subject   string    `db:"subject" json:"subject"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
