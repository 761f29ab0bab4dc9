package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/peerlearn/tutoring-api/internal/models"
)

const approvalColumns = "id, tutor_id, subject_name, subject_type, subject_grade, status, approved_by, approved_at, created_at, updated_at"

const certRequestColumns = "id, tutor_id, tutor_name, subject_name, subject_type, subject_grade, tutor_mark, created_at"

// ApprovalRepository manages subject approvals and certification requests.
type ApprovalRepository struct {
	db *sqlx.DB
}

// NewApprovalRepository constructs an ApprovalRepository.
func NewApprovalRepository(db *sqlx.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// ListApprovedForSubject returns a tutor's approved approvals matching
// the subject's exact type and grade. Name containment is checked by the
// caller, not in SQL.
func (r *ApprovalRepository) ListApprovedForSubject(ctx context.Context, tutorID string, subject models.SubjectDescriptor) ([]models.SubjectApproval, error) {
	query := fmt.Sprintf("SELECT %s FROM subject_approvals WHERE tutor_id = $1 AND status = $2 AND subject_type = $3 AND subject_grade = $4", approvalColumns)
	var approvals []models.SubjectApproval
	if err := r.db.SelectContext(ctx, &approvals, query, tutorID, models.ApprovalApproved, subject.Type, subject.Grade); err != nil {
		return nil, fmt.Errorf("list approved subjects: %w", err)
	}
	return approvals, nil
}

// ListByTutor returns all of a tutor's approvals, newest first.
func (r *ApprovalRepository) ListByTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error) {
	query := fmt.Sprintf("SELECT %s FROM subject_approvals WHERE tutor_id = $1 ORDER BY created_at DESC", approvalColumns)
	var approvals []models.SubjectApproval
	if err := r.db.SelectContext(ctx, &approvals, query, tutorID); err != nil {
		return nil, fmt.Errorf("list approvals by tutor: %w", err)
	}
	return approvals, nil
}

// Upsert writes an approval decision, replacing any earlier decision for
// the same tutor and exact subject triple.
func (r *ApprovalRepository) Upsert(ctx context.Context, approval *models.SubjectApproval) error {
	findQuery := fmt.Sprintf("SELECT %s FROM subject_approvals WHERE tutor_id = $1 AND subject_name = $2 AND subject_type = $3 AND subject_grade = $4", approvalColumns)
	var existing models.SubjectApproval
	err := r.db.GetContext(ctx, &existing, findQuery, approval.TutorID, approval.Name, approval.Type, approval.Grade)
	now := time.Now().UTC()

	switch {
	case err == nil:
		approval.ID = existing.ID
		approval.CreatedAt = existing.CreatedAt
		approval.UpdatedAt = now
		const updateQuery = `UPDATE subject_approvals SET status = :status, approved_by = :approved_by, approved_at = :approved_at, updated_at = :updated_at WHERE id = :id`
		if _, err := r.db.NamedExecContext(ctx, updateQuery, approval); err != nil {
			return fmt.Errorf("update subject approval: %w", err)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		if approval.ID == "" {
			approval.ID = uuid.NewString()
		}
		approval.CreatedAt = now
		approval.UpdatedAt = now
		const insertQuery = `INSERT INTO subject_approvals (id, tutor_id, subject_name, subject_type, subject_grade, status, approved_by, approved_at, created_at, updated_at)
			VALUES (:id, :tutor_id, :subject_name, :subject_type, :subject_grade, :status, :approved_by, :approved_at, :created_at, :updated_at)`
		if _, err := r.db.NamedExecContext(ctx, insertQuery, approval); err != nil {
			return fmt.Errorf("insert subject approval: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("find subject approval: %w", err)
	}
}

// CreateCertificationRequest records a tutor's request for certification.
func (r *ApprovalRepository) CreateCertificationRequest(ctx context.Context, req *models.CertificationRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO certification_requests (id, tutor_id, tutor_name, subject_name, subject_type, subject_grade, tutor_mark, created_at)
		VALUES (:id, :tutor_id, :tutor_name, :subject_name, :subject_type, :subject_grade, :tutor_mark, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create certification request: %w", err)
	}
	return nil
}

// FindCertificationRequestByID fetches a pending certification request.
func (r *ApprovalRepository) FindCertificationRequestByID(ctx context.Context, id string) (*models.CertificationRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM certification_requests WHERE id = $1", certRequestColumns)
	var req models.CertificationRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListCertificationRequests returns pending requests, oldest first.
func (r *ApprovalRepository) ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM certification_requests ORDER BY created_at ASC", certRequestColumns)
	var reqs []models.CertificationRequest
	if err := r.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, fmt.Errorf("list certification requests: %w", err)
	}
	return reqs, nil
}

// DeleteCertificationRequest removes a resolved request.
func (r *ApprovalRepository) DeleteCertificationRequest(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM certification_requests WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete certification request: %w", err)
	}
	return nil
}
