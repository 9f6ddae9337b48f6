package models

import "time"

// UserRegionProfile links an authenticated user to the region whose
// applicants they may see. At most one profile per user is expected;
// duplicates are a data-integrity bug the cleanup operation removes.
type UserRegionProfile struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Region    string    `db:"region" json:"region"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
