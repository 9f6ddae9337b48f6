package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type fakeApplicantStore struct {
	applicants []models.Applicant
	total      int
	listErr    error

	grouped    map[string][]models.GroupCount
	groupedErr error

	kpis    models.KPICounts
	kpisErr error

	options    map[string][]string
	optionsErr error

	lastScope  string
	lastFilter models.ApplicantFilter
	listCalls  int
}

func (f *fakeApplicantStore) List(_ context.Context, filter models.ApplicantFilter, scopeRegion string) ([]models.Applicant, int, error) {
	f.listCalls++
	f.lastFilter = filter
	f.lastScope = scopeRegion
	return f.applicants, f.total, f.listErr
}

func (f *fakeApplicantStore) GroupedCounts(_ context.Context, dimension string, filter models.ApplicantFilter, scopeRegion string) ([]models.GroupCount, error) {
	f.lastFilter = filter
	f.lastScope = scopeRegion
	return f.grouped[dimension], f.groupedErr
}

func (f *fakeApplicantStore) KPICounts(_ context.Context, filter models.ApplicantFilter, scopeRegion string) (models.KPICounts, error) {
	f.lastFilter = filter
	f.lastScope = scopeRegion
	return f.kpis, f.kpisErr
}

func (f *fakeApplicantStore) DistinctOptions(_ context.Context, dimension string) ([]string, error) {
	return f.options[dimension], f.optionsErr
}

type fakeProfileStore struct {
	profile *models.UserRegionProfile
	err     error
}

func (f *fakeProfileStore) FindByUserID(context.Context, string) (*models.UserRegionProfile, error) {
	return f.profile, f.err
}

func staffActor() *models.JWTClaims {
	return &models.JWTClaims{UserID: "staff-1", Role: models.RoleStaff}
}

func viewerActor() *models.JWTClaims {
	return &models.JWTClaims{UserID: "viewer-1", Role: models.RoleViewer}
}

func TestApplicantServiceListStaffUnscoped(t *testing.T) {
	store := &fakeApplicantStore{total: 3, applicants: make([]models.Applicant, 3)}
	svc := NewApplicantService(store, &fakeProfileStore{}, nil)

	applicants, pagination, err := svc.List(context.Background(), staffActor(), models.ApplicantFilter{})
	require.NoError(t, err)
	assert.Len(t, applicants, 3)
	assert.Empty(t, store.lastScope)
	assert.Equal(t, 3, pagination.Total)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestApplicantServiceListViewerScopedToRegion(t *testing.T) {
	store := &fakeApplicantStore{}
	profiles := &fakeProfileStore{profile: &models.UserRegionProfile{UserID: "viewer-1", Region: "Ashanti"}}
	svc := NewApplicantService(store, profiles, nil)

	_, _, err := svc.List(context.Background(), viewerActor(), models.ApplicantFilter{Region: "Volta"})
	require.NoError(t, err)
	// The profile region pins the scope; the filter criterion passes through.
	assert.Equal(t, "Ashanti", store.lastScope)
	assert.Equal(t, "Volta", store.lastFilter.Region)
}

func TestApplicantServiceListViewerWithoutProfileSeesNothing(t *testing.T) {
	store := &fakeApplicantStore{total: 99}
	svc := NewApplicantService(store, &fakeProfileStore{}, nil)

	applicants, pagination, err := svc.List(context.Background(), viewerActor(), models.ApplicantFilter{})
	require.NoError(t, err)
	assert.Empty(t, applicants)
	assert.Equal(t, 0, pagination.Total)
	// The store is never queried for an unprofiled viewer.
	assert.Equal(t, 0, store.listCalls)
}

func TestApplicantServiceListAnonymousRejected(t *testing.T) {
	svc := NewApplicantService(&fakeApplicantStore{}, &fakeProfileStore{}, nil)

	_, _, err := svc.List(context.Background(), nil, models.ApplicantFilter{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestApplicantServiceListProfileLookupError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewApplicantService(&fakeApplicantStore{}, &fakeProfileStore{err: boom}, nil)

	_, _, err := svc.List(context.Background(), viewerActor(), models.ApplicantFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestApplicantServiceListPaginationMath(t *testing.T) {
	store := &fakeApplicantStore{total: 101}
	svc := NewApplicantService(store, &fakeProfileStore{}, nil)

	_, pagination, err := svc.List(context.Background(), staffActor(), models.ApplicantFilter{Page: 2, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
	assert.Equal(t, 3, pagination.TotalPages)
}

func TestApplicantServiceListDefaultsPageSize(t *testing.T) {
	store := &fakeApplicantStore{}
	svc := NewApplicantService(store, &fakeProfileStore{}, nil)

	_, pagination, err := svc.List(context.Background(), staffActor(), models.ApplicantFilter{PageSize: 10000})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPageSize, pagination.PageSize)
}
