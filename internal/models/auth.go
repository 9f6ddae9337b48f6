package models

import "github.com/golang-jwt/jwt/v5"

// UserRole distinguishes staff (unrestricted) from regional viewers.
type UserRole string

const (
	RoleStaff  UserRole = "STAFF"
	RoleViewer UserRole = "VIEWER"
)

// JWTClaims represents the JWT payload for access tokens. Token issuance
// lives with the identity provider; this service only validates.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}

// IsStaff reports whether the actor bypasses region scoping.
func (c *JWTClaims) IsStaff() bool {
	return c != nil && c.Role == RoleStaff
}
