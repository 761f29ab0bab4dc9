package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type approvalRepository interface {
	ListApprovedForSubject(ctx context.Context, tutorID string, subject models.SubjectDescriptor) ([]models.SubjectApproval, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error)
	Upsert(ctx context.Context, approval *models.SubjectApproval) error
	CreateCertificationRequest(ctx context.Context, req *models.CertificationRequest) error
	FindCertificationRequestByID(ctx context.Context, id string) (*models.CertificationRequest, error)
	ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error)
	DeleteCertificationRequest(ctx context.Context, id string) error
}

type tutorReader interface {
	FindTutorByID(ctx context.Context, id string) (*models.Tutor, error)
}

type certificationNotifier interface {
	CertificationDecision(tutor *models.Tutor, subject models.SubjectDescriptor, approved bool) error
}

// ApprovalService owns the subject-approval gate and the certification
// request flow that feeds it.
type ApprovalService struct {
	repo      approvalRepository
	tutors    tutorReader
	notifier  certificationNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApprovalService constructs the service.
func NewApprovalService(repo approvalRepository, tutors tutorReader, notifier certificationNotifier, validate *validator.Validate, logger *zap.Logger) *ApprovalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{repo: repo, tutors: tutors, notifier: notifier, validator: validate, logger: logger}
}

// IsApproved reports whether the tutor holds an approval covering the
// subject. Type and grade must match exactly; the approved name must be
// contained in the subject's name.
func (s *ApprovalService) IsApproved(ctx context.Context, tutorID string, subject models.SubjectDescriptor) (bool, error) {
	approvals, err := s.repo.ListApprovedForSubject(ctx, tutorID, subject)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject approvals")
	}
	for _, approval := range approvals {
		if approval.NameMatches(subject.Name) {
			return true, nil
		}
	}
	return false, nil
}

// ListForTutor returns a tutor's approvals for their dashboard.
func (s *ApprovalService) ListForTutor(ctx context.Context, tutorID string) ([]models.SubjectApproval, error) {
	approvals, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approvals")
	}
	return approvals, nil
}

// CertificationRequestInput is a tutor's request to be certified.
type CertificationRequestInput struct {
	SubjectName  string  `json:"subject_name" validate:"required"`
	SubjectType  string  `json:"subject_type" validate:"required"`
	SubjectGrade string  `json:"subject_grade" validate:"required"`
	TutorMark    *string `json:"tutor_mark"`
}

// RequestCertification files a certification request on behalf of a tutor.
func (s *ApprovalService) RequestCertification(ctx context.Context, tutor *models.Tutor, input CertificationRequestInput) (*models.CertificationRequest, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid certification request")
	}

	req := &models.CertificationRequest{
		TutorID:   tutor.ID,
		TutorName: tutor.FullName(),
		SubjectDescriptor: models.SubjectDescriptor{
			Name:  input.SubjectName,
			Type:  input.SubjectType,
			Grade: input.SubjectGrade,
		},
		TutorMark: input.TutorMark,
	}
	if err := s.repo.CreateCertificationRequest(ctx, req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create certification request")
	}
	return req, nil
}

// ListCertificationRequests returns the pending queue for admins.
func (s *ApprovalService) ListCertificationRequests(ctx context.Context) ([]models.CertificationRequest, error) {
	reqs, err := s.repo.ListCertificationRequests(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certification requests")
	}
	return reqs, nil
}

// ResolveCertification approves or rejects a pending request. Approval
// writes a SubjectApproval; either way the request is consumed. The
// decision email is best-effort and reported as a warning.
func (s *ApprovalService) ResolveCertification(ctx context.Context, requestID, adminID string, approve bool) (*models.SubjectApproval, []string, error) {
	req, err := s.repo.FindCertificationRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "certification request not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load certification request")
	}

	status := models.ApprovalRejected
	if approve {
		status = models.ApprovalApproved
	}
	now := time.Now().UTC()
	approval := &models.SubjectApproval{
		TutorID:           req.TutorID,
		SubjectDescriptor: req.SubjectDescriptor,
		Status:            status,
		ApprovedBy:        &adminID,
		ApprovedAt:        &now,
	}
	if err := s.repo.Upsert(ctx, approval); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record approval decision")
	}

	var warnings []string
	if err := s.repo.DeleteCertificationRequest(ctx, req.ID); err != nil {
		s.logger.Sugar().Warnw("failed to delete resolved certification request", "request_id", req.ID, "error", err)
		warnings = append(warnings, "certification_request_cleanup_failed")
	}

	if s.notifier != nil {
		tutor, err := s.tutors.FindTutorByID(ctx, req.TutorID)
		if err != nil {
			s.logger.Sugar().Warnw("failed to load tutor for certification email", "tutor_id", req.TutorID, "error", err)
			warnings = append(warnings, "certification_email_skipped")
		} else if err := s.notifier.CertificationDecision(tutor, req.SubjectDescriptor, approve); err != nil {
			s.logger.Sugar().Warnw("failed to enqueue certification email", "tutor_id", req.TutorID, "error", err)
			warnings = append(warnings, "certification_email_failed")
		}
	}

	return approval, warnings, nil
}

// GrantApproval lets an admin approve a subject directly, outside the
// request flow.
func (s *ApprovalService) GrantApproval(ctx context.Context, tutorID, adminID string, subject models.SubjectDescriptor) (*models.SubjectApproval, error) {
	if !subject.Complete() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject name, type and grade are required")
	}
	now := time.Now().UTC()
	approval := &models.SubjectApproval{
		TutorID:           tutorID,
		SubjectDescriptor: subject,
		Status:            models.ApprovalApproved,
		ApprovedBy:        &adminID,
		ApprovedAt:        &now,
	}
	if err := s.repo.Upsert(ctx, approval); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to grant approval")
	}
	return approval, nil
}
