package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type fakeProfileAdminStore struct {
	existing *models.UserRegionProfile
	findErr  error
	created  *models.UserRegionProfile
	removed  int64
}

func (f *fakeProfileAdminStore) FindByUserID(context.Context, string) (*models.UserRegionProfile, error) {
	return f.existing, f.findErr
}

func (f *fakeProfileAdminStore) Create(_ context.Context, profile *models.UserRegionProfile) error {
	f.created = profile
	return nil
}

func (f *fakeProfileAdminStore) DeleteDuplicates(context.Context) (int64, error) {
	return f.removed, nil
}

func TestProfileServiceAssignCreatesProfile(t *testing.T) {
	store := &fakeProfileAdminStore{}
	svc := NewProfileService(store, nil, nil)

	profile, err := svc.Assign(context.Background(), staffActor(), "user-9", "Ashanti")
	require.NoError(t, err)
	assert.Equal(t, "user-9", profile.UserID)
	assert.Equal(t, "Ashanti", profile.Region)
	require.NotNil(t, store.created)
	assert.Equal(t, "Ashanti", store.created.Region)
}

func TestProfileServiceAssignKeepsExistingProfile(t *testing.T) {
	existing := &models.UserRegionProfile{UserID: "user-9", Region: "Volta"}
	store := &fakeProfileAdminStore{existing: existing}
	svc := NewProfileService(store, nil, nil)

	profile, err := svc.Assign(context.Background(), staffActor(), "user-9", "Ashanti")
	require.NoError(t, err)
	assert.Equal(t, "Volta", profile.Region)
	assert.Nil(t, store.created)
}

func TestProfileServiceAssignRejectsViewer(t *testing.T) {
	svc := NewProfileService(&fakeProfileAdminStore{}, nil, nil)

	_, err := svc.Assign(context.Background(), viewerActor(), "user-9", "Ashanti")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Assign(context.Background(), nil, "user-9", "Ashanti")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestProfileServiceAssignValidatesInput(t *testing.T) {
	svc := NewProfileService(&fakeProfileAdminStore{}, nil, nil)

	_, err := svc.Assign(context.Background(), staffActor(), "", "Ashanti")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}

func TestProfileServiceCleanupDuplicates(t *testing.T) {
	store := &fakeProfileAdminStore{removed: 3}
	svc := NewProfileService(store, nil, nil)

	removed, err := svc.CleanupDuplicates(context.Background(), staffActor())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = svc.CleanupDuplicates(context.Background(), viewerActor())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
