package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type profileAdminStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserRegionProfile, error)
	Create(ctx context.Context, profile *models.UserRegionProfile) error
	DeleteDuplicates(ctx context.Context) (int64, error)
}

type assignProfileInput struct {
	UserID string `validate:"required"`
	Region string `validate:"required,max=100"`
}

// ProfileService manages the per-user region assignments behind scoping.
type ProfileService struct {
	profiles profileAdminStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewProfileService(profiles profileAdminStore, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profiles: profiles, validate: validate, logger: logger}
}

// Assign gives userID a region profile. Staff only; an existing profile is
// left untouched.
func (s *ProfileService) Assign(ctx context.Context, actor *models.JWTClaims, userID, region string) (*models.UserRegionProfile, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsStaff() {
		return nil, apperrors.ErrForbidden
	}
	if err := s.validate.Struct(assignProfileInput{UserID: userID, Region: region}); err != nil {
		return nil, apperrors.Clone(apperrors.ErrValidation, "user_id and region are required")
	}

	existing, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile := &models.UserRegionProfile{UserID: userID, Region: region}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("region profile assigned", zap.String("user_id", userID), zap.String("region", region))
	return profile, nil
}

// CleanupDuplicates removes redundant profile rows, keeping the oldest per
// user. Returns the number of rows removed.
func (s *ProfileService) CleanupDuplicates(ctx context.Context, actor *models.JWTClaims) (int64, error) {
	if actor == nil {
		return 0, apperrors.ErrUnauthorized
	}
	if !actor.IsStaff() {
		return 0, apperrors.ErrForbidden
	}
	removed, err := s.profiles.DeleteDuplicates(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("duplicate region profiles removed", zap.Int64("count", removed))
	}
	return removed, nil
}
