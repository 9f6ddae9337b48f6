package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/dto"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// dashboardCachePrefix namespaces every dashboard cache key so an import
// can invalidate the whole dashboard with one pattern delete.
const dashboardCachePrefix = "dashboard"

// DashboardService computes the aggregate views: chart breakdowns, KPI
// counts and filter dropdown options. Aggregates honor the same region
// scoping as the listing; results are cached in Redis when a cache is
// configured.
type DashboardService struct {
	applicants applicantStore
	profiles   profileStore
	cache      *CacheService
	logger     *zap.Logger
}

func NewDashboardService(applicants applicantStore, profiles profileStore, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{applicants: applicants, profiles: profiles, cache: cache, logger: logger}
}

// aggregateFilter strips the criteria that only apply to the listing.
// Free-text search never narrows chart or KPI aggregates.
func aggregateFilter(filter models.ApplicantFilter) models.ApplicantFilter {
	filter.Search = ""
	filter.Page = 0
	filter.PageSize = 0
	return filter
}

func cacheKey(section, scope string, filter models.ApplicantFilter) string {
	parts := []string{dashboardCachePrefix, section, "scope=" + strings.ToLower(scope)}
	if filter.DateFrom != nil {
		parts = append(parts, "from="+filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		parts = append(parts, "to="+filter.DateTo.Format("2006-01-02"))
	}
	if filter.Status != "" {
		parts = append(parts, "status="+strings.ToLower(filter.Status))
	}
	if filter.Course != "" {
		parts = append(parts, "course="+strings.ToLower(filter.Course))
	}
	if filter.Gender != "" {
		parts = append(parts, "gender="+strings.ToLower(filter.Gender))
	}
	if filter.Region != "" {
		parts = append(parts, "region="+strings.ToLower(filter.Region))
	}
	return strings.Join(parts, ":")
}

// Charts returns the gender, status and course breakdowns for the filtered,
// region-scoped applicant set.
func (s *DashboardService) Charts(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) (*dto.ChartDataResponse, error) {
	scope, denied, err := resolveRegionScope(ctx, s.profiles, actor)
	if err != nil {
		return nil, err
	}
	if denied {
		return &dto.ChartDataResponse{
			Gender: []models.GroupCount{},
			Status: []models.GroupCount{},
			Course: []models.GroupCount{},
		}, nil
	}

	filter = aggregateFilter(filter)
	key := cacheKey("charts", scope, filter)
	var cached dto.ChartDataResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	charts := &dto.ChartDataResponse{}
	for _, dim := range []struct {
		name string
		dest *[]models.GroupCount
	}{
		{"gender", &charts.Gender},
		{"status", &charts.Status},
		{"course", &charts.Course},
	} {
		counts, err := s.applicants.GroupedCounts(ctx, dim.name, filter, scope)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", dim.name, err)
		}
		if counts == nil {
			counts = []models.GroupCount{}
		}
		*dim.dest = counts
	}

	s.cache.SetJSON(ctx, key, charts)
	return charts, nil
}

// KPIs returns the headline dashboard numbers. The completion rate is the
// share of applicants who are enrolled or closed, rounded to the nearest
// whole percent, and zero when there are no applicants at all.
func (s *DashboardService) KPIs(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) (*dto.KPIResponse, error) {
	scope, denied, err := resolveRegionScope(ctx, s.profiles, actor)
	if err != nil {
		return nil, err
	}
	if denied {
		return &dto.KPIResponse{}, nil
	}

	filter = aggregateFilter(filter)
	key := cacheKey("kpis", scope, filter)
	var cached dto.KPIResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	counts, err := s.applicants.KPICounts(ctx, filter, scope)
	if err != nil {
		return nil, fmt.Errorf("kpi counts: %w", err)
	}

	kpis := &dto.KPIResponse{
		TotalApplicants:  counts.Total,
		ActiveStudents:   counts.Active,
		CompletedCourses: counts.Completed,
	}
	if counts.Total > 0 {
		rate := float64(counts.Active+counts.Completed) / float64(counts.Total) * 100
		kpis.CompletionRate = int(math.Round(rate))
	}

	s.cache.SetJSON(ctx, key, kpis)
	return kpis, nil
}

// FilterOptions lists the distinct dropdown values present in the store.
// Options are discovered across all regions so dropdowns stay stable.
func (s *DashboardService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	key := dashboardCachePrefix + ":options"
	var cached models.FilterOptions
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	options := &models.FilterOptions{}
	for _, dim := range []struct {
		name string
		dest *[]string
	}{
		{"status", &options.Statuses},
		{"region", &options.Regions},
		{"course", &options.Courses},
		{"gender", &options.Genders},
	} {
		values, err := s.applicants.DistinctOptions(ctx, dim.name)
		if err != nil {
			return nil, fmt.Errorf("filter options %s: %w", dim.name, err)
		}
		if values == nil {
			values = []string{}
		}
		*dim.dest = values
	}

	s.cache.SetJSON(ctx, key, options)
	return options, nil
}

// InvalidateCache drops every cached dashboard payload. Called after an
// import changes the underlying data.
func (s *DashboardService) InvalidateCache(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardCachePrefix+":*")
}
