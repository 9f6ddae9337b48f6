package service

import (
	"context"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

// resolveRegionScope returns the region the actor is restricted to. Staff
// see every region. A non-staff user without a region profile sees no data
// at all, signalled by denied=true rather than an error so callers can
// return an empty result.
func resolveRegionScope(ctx context.Context, profiles profileStore, actor *models.JWTClaims) (region string, denied bool, err error) {
	if actor == nil {
		return "", false, apperrors.ErrUnauthorized
	}
	if actor.IsStaff() {
		return "", false, nil
	}
	profile, err := profiles.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return "", false, err
	}
	if profile == nil || profile.Region == "" {
		return "", true, nil
	}
	return profile.Region, false, nil
}
