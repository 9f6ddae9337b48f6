package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	"github.com/let-tech/applicant-dashboard-api/pkg/config"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

// AuthService validates access tokens minted by the identity provider.
// This service never issues tokens itself.
type AuthService struct {
	config config.JWTConfig
}

func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{config: cfg}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, apperrors.Clone(apperrors.ErrUnauthorized, "invalid token claims")
	}
	if claims.UserID == "" {
		return nil, apperrors.Clone(apperrors.ErrUnauthorized, "token missing subject")
	}
	return claims, nil
}
