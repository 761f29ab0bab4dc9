package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

type profileRepository interface {
	FindTutorByAuthID(ctx context.Context, authID string) (*models.Tutor, error)
	FindTutorByID(ctx context.Context, id string) (*models.Tutor, error)
	ListTutors(ctx context.Context) ([]models.Tutor, error)
	UpdateTutorStatus(ctx context.Context, tutorID string, status models.TutorStatus) (bool, error)
	FindTuteeByAuthID(ctx context.Context, authID string) (*models.Tutee, error)
	FindAdminByAuthID(ctx context.Context, authID string) (*models.Admin, error)
}

// ProfileService resolves authenticated identities to domain profiles and
// handles admin tutor management.
type ProfileService struct {
	repo   profileRepository
	logger *zap.Logger
}

// NewProfileService constructs the service.
func NewProfileService(repo profileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, logger: logger}
}

// ResolveTutor maps an auth identity to its tutor profile.
func (s *ProfileService) ResolveTutor(ctx context.Context, authID string) (*models.Tutor, error) {
	tutor, err := s.repo.FindTutorByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no tutor profile for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor profile")
	}
	return tutor, nil
}

// ResolveTutee maps an auth identity to its tutee profile.
func (s *ProfileService) ResolveTutee(ctx context.Context, authID string) (*models.Tutee, error) {
	tutee, err := s.repo.FindTuteeByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no tutee profile for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutee profile")
	}
	return tutee, nil
}

// ResolveAdmin maps an auth identity to its admin profile.
func (s *ProfileService) ResolveAdmin(ctx context.Context, authID string) (*models.Admin, error) {
	admin, err := s.repo.FindAdminByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no admin profile for this account")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin profile")
	}
	return admin, nil
}

// GetTutor fetches a tutor profile by ID.
func (s *ProfileService) GetTutor(ctx context.Context, id string) (*models.Tutor, error) {
	tutor, err := s.repo.FindTutorByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}
	return tutor, nil
}

// ListTutors returns all tutor profiles for the admin console.
func (s *ProfileService) ListTutors(ctx context.Context) ([]models.Tutor, error) {
	tutors, err := s.repo.ListTutors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tutors")
	}
	return tutors, nil
}

// SetTutorStatus changes a tutor's standing. Suspended and pending tutors
// cannot accept opportunities.
func (s *ProfileService) SetTutorStatus(ctx context.Context, tutorID string, status models.TutorStatus) error {
	switch status {
	case models.TutorActive, models.TutorPending, models.TutorSuspended:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "status must be active, pending or suspended")
	}
	ok, err := s.repo.UpdateTutorStatus(ctx, tutorID, status)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tutor status")
	}
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
	}
	return nil
}
