package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

type applicantStore interface {
	List(ctx context.Context, filter models.ApplicantFilter, scopeRegion string) ([]models.Applicant, int, error)
	GroupedCounts(ctx context.Context, dimension string, filter models.ApplicantFilter, scopeRegion string) ([]models.GroupCount, error)
	KPICounts(ctx context.Context, filter models.ApplicantFilter, scopeRegion string) (models.KPICounts, error)
	DistinctOptions(ctx context.Context, dimension string) ([]string, error)
}

type profileStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserRegionProfile, error)
}

// ApplicantService serves the applicant listing with per-user region
// scoping applied on top of the caller's filters.
type ApplicantService struct {
	applicants applicantStore
	profiles   profileStore
	logger     *zap.Logger
}

func NewApplicantService(applicants applicantStore, profiles profileStore, logger *zap.Logger) *ApplicantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicantService{applicants: applicants, profiles: profiles, logger: logger}
}

// List returns one page of applicants matching filter, restricted to the
// actor's region when one applies.
func (s *ApplicantService) List(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error) {
	scope, denied, err := resolveRegionScope(ctx, s.profiles, actor)
	if err != nil {
		return nil, nil, err
	}
	if denied {
		s.logger.Debug("no region profile, returning empty page", zap.String("user_id", actor.UserID))
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 || size > models.MaxPageSize {
		size = models.DefaultPageSize
	}
	if denied {
		return []models.Applicant{}, &models.Pagination{Page: page, PageSize: size, Total: 0, TotalPages: 0}, nil
	}

	applicants, total, err := s.applicants.List(ctx, filter, scope)
	if err != nil {
		return nil, nil, err
	}
	totalPages := (total + size - 1) / size
	return applicants, &models.Pagination{Page: page, PageSize: size, Total: total, TotalPages: totalPages}, nil
}
