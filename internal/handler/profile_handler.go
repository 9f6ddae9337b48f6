package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/let-tech/applicant-dashboard-api/internal/middleware"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
	appErrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
	"github.com/let-tech/applicant-dashboard-api/pkg/response"
)

type profileManager interface {
	Assign(ctx context.Context, actor *models.JWTClaims, userID, region string) (*models.UserRegionProfile, error)
	CleanupDuplicates(ctx context.Context, actor *models.JWTClaims) (int64, error)
}

// ProfileHandler manages region profile assignments.
type ProfileHandler struct {
	profiles profileManager
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(profiles profileManager) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type assignProfileRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Region string `json:"region" binding:"required"`
}

// Assign godoc
// @Summary Assign a region profile to a user
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body assignProfileRequest true "Assignment"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /profiles [post]
func (h *ProfileHandler) Assign(c *gin.Context) {
	var req assignProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload"))
		return
	}
	profile, err := h.profiles.Assign(c.Request.Context(), middleware.CurrentUser(c), req.UserID, req.Region)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, profile, nil)
}

// CleanupDuplicates godoc
// @Summary Remove duplicate region profiles keeping the oldest per user
// @Tags Profiles
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /profiles/cleanup [post]
func (h *ProfileHandler) CleanupDuplicates(c *gin.Context) {
	removed, err := h.profiles.CleanupDuplicates(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}
