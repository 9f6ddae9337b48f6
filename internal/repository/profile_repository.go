package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// ProfileRepository manages user region profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID returns the user's region profile, or nil when none
// exists. The oldest row wins when duplicates have crept in.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.UserRegionProfile, error) {
	const query = `SELECT id, user_id, region, created_at FROM user_region_profiles
        WHERE user_id = $1 ORDER BY id LIMIT 1`
	var profile models.UserRegionProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find region profile: %w", err)
	}
	return &profile, nil
}

// Create inserts a region profile for a user.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserRegionProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO user_region_profiles (user_id, region, created_at)
        VALUES (:user_id, :region, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create region profile: %w", err)
	}
	return nil
}

// DeleteDuplicates removes all but the oldest profile per user and
// returns the number of rows deleted.
func (r *ProfileRepository) DeleteDuplicates(ctx context.Context) (int64, error) {
	const query = `DELETE FROM user_region_profiles p
        USING user_region_profiles keep
        WHERE keep.user_id = p.user_id AND keep.id < p.id`
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete duplicate profiles: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted profiles: %w", err)
	}
	return deleted, nil
}
