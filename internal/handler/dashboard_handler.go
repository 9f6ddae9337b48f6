package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/let-tech/applicant-dashboard-api/internal/dto"
	"github.com/let-tech/applicant-dashboard-api/internal/middleware"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
	appErrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
	"github.com/let-tech/applicant-dashboard-api/pkg/response"
)

type dashboardService interface {
	Charts(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) (*dto.ChartDataResponse, error)
	KPIs(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) (*dto.KPIResponse, error)
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

// DashboardHandler exposes the aggregate dashboard endpoints.
type DashboardHandler struct {
	dashboard dashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func bindFilter(c *gin.Context) (*dto.ApplicantListQuery, bool) {
	var query dto.ApplicantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return nil, false
	}
	return &query, true
}

// Charts godoc
// @Summary Categorical breakdowns for dashboard charts
// @Tags Dashboard
// @Produce json
// @Param date_from query string false "Submission date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Submission date upper bound (YYYY-MM-DD)"
// @Param status query string false "Application status"
// @Param course query string false "Course title"
// @Param gender query string false "Gender"
// @Param region query string false "Region"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/charts [get]
func (h *DashboardHandler) Charts(c *gin.Context) {
	query, ok := bindFilter(c)
	if !ok {
		return
	}
	charts, err := h.dashboard.Charts(c.Request.Context(), middleware.CurrentUser(c), query.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, charts, nil)
}

// KPIs godoc
// @Summary Headline dashboard numbers
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *gin.Context) {
	query, ok := bindFilter(c)
	if !ok {
		return
	}
	kpis, err := h.dashboard.KPIs(c.Request.Context(), middleware.CurrentUser(c), query.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, kpis, nil)
}

// FilterOptions godoc
// @Summary Distinct values for the dashboard filter dropdowns
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /dashboard/filter-options [get]
func (h *DashboardHandler) FilterOptions(c *gin.Context) {
	options, err := h.dashboard.FilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}
