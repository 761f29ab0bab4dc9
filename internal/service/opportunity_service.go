package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/peerlearn/tutoring-api/internal/models"
	appErrors "github.com/peerlearn/tutoring-api/pkg/errors"
)

const openListingCacheKey = "opportunities:open"

type opportunityRepository interface {
	Create(ctx context.Context, opp *models.Opportunity) error
	FindByID(ctx context.Context, id string) (*models.Opportunity, error)
	ListOpen(ctx context.Context) ([]models.OpportunityListing, error)
	ListByTutee(ctx context.Context, tuteeID string) ([]models.Opportunity, error)
	ListAll(ctx context.Context, limit int) ([]models.Opportunity, error)
	CancelOwned(ctx context.Context, id, tuteeID string) (bool, error)
	DeleteIfOpen(ctx context.Context, id string) (bool, error)
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// OpportunityService manages open tutoring requests and the cached listing
// tutors browse.
type OpportunityService struct {
	repo      opportunityRepository
	cache     listingCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOpportunityService constructs the service. A nil cache disables
// listing caching.
func NewOpportunityService(repo opportunityRepository, cache listingCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *OpportunityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &OpportunityService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// CreateOpportunityRequest is a tutee's new tutoring request.
type CreateOpportunityRequest struct {
	SubjectName        string  `json:"subject_name" validate:"required"`
	SubjectType        string  `json:"subject_type" validate:"required"`
	SubjectGrade       string  `json:"subject_grade" validate:"required"`
	Language           *string `json:"language"`
	LocationPreference *string `json:"location_preference"`
	AdditionalNotes    *string `json:"additional_notes"`
	Priority           string  `json:"priority" validate:"omitempty,oneof=normal high"`
}

// Create opens a new opportunity for the tutee.
func (s *OpportunityService) Create(ctx context.Context, tuteeID string, req CreateOpportunityRequest) (*models.Opportunity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid opportunity payload")
	}

	subject := models.SubjectDescriptor{Name: req.SubjectName, Type: req.SubjectType, Grade: req.SubjectGrade}
	opp, err := models.NewOpportunity(tuteeID, subject, models.OpportunityPriority(req.Priority))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	opp.Language = req.Language
	opp.LocationPreference = req.LocationPreference
	opp.AdditionalNotes = req.AdditionalNotes

	if err := s.repo.Create(ctx, opp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create opportunity")
	}
	s.invalidateListing(ctx)
	return opp, nil
}

// ListOpen returns the open listing shown to tutors, served from cache
// when fresh.
func (s *OpportunityService) ListOpen(ctx context.Context) ([]models.OpportunityListing, error) {
	if s.cache != nil {
		var cached []models.OpportunityListing
		err := s.cache.Get(ctx, openListingCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Sugar().Warnw("listing cache read failed", "error", err)
		}
	}

	listings, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list opportunities")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, openListingCacheKey, listings, s.cacheTTL); err != nil {
			s.logger.Sugar().Warnw("listing cache write failed", "error", err)
		}
	}
	return listings, nil
}

// ListForTutee returns a tutee's own requests.
func (s *OpportunityService) ListForTutee(ctx context.Context, tuteeID string) ([]models.Opportunity, error) {
	opps, err := s.repo.ListByTutee(ctx, tuteeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list opportunities")
	}
	return opps, nil
}

// ListAll returns recent opportunities for the admin console.
func (s *OpportunityService) ListAll(ctx context.Context, limit int) ([]models.Opportunity, error) {
	opps, err := s.repo.ListAll(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list opportunities")
	}
	return opps, nil
}

// Cancel withdraws a tutee's own open opportunity. An opportunity already
// claimed or cancelled cannot be cancelled again.
func (s *OpportunityService) Cancel(ctx context.Context, id, tuteeID string) error {
	ok, err := s.repo.CancelOwned(ctx, id, tuteeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel opportunity")
	}
	if !ok {
		return appErrors.ErrOpportunityNotOpen
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *OpportunityService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "opportunities:*"); err != nil {
		s.logger.Sugar().Warnw("listing cache invalidation failed", "error", err)
	}
}
