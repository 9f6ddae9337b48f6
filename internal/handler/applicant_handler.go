package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/let-tech/applicant-dashboard-api/internal/dto"
	"github.com/let-tech/applicant-dashboard-api/internal/middleware"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
	appErrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
	"github.com/let-tech/applicant-dashboard-api/pkg/response"
)

type applicantService interface {
	List(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error)
}

type importUploader interface {
	Upload(ctx context.Context, actor *models.JWTClaims, filename string, content io.Reader) (*models.ImportJob, error)
}

type exportService interface {
	ApplicantsCSV(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]byte, string, error)
	KPISummaryPDF(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]byte, string, error)
}

// ApplicantHandler exposes the applicant listing, upload and export endpoints.
type ApplicantHandler struct {
	applicants applicantService
	imports    importUploader
	exports    exportService
}

// NewApplicantHandler constructs ApplicantHandler.
func NewApplicantHandler(applicants applicantService, imports importUploader, exports exportService) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, imports: imports, exports: exports}
}

// List godoc
// @Summary List applicants
// @Tags Applicants
// @Produce json
// @Param date_from query string false "Submission date lower bound (YYYY-MM-DD)"
// @Param date_to query string false "Submission date upper bound (YYYY-MM-DD)"
// @Param status query string false "Application status"
// @Param course query string false "Course title"
// @Param gender query string false "Gender"
// @Param region query string false "Region"
// @Param search query string false "Search across name, email and application id"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants [get]
func (h *ApplicantHandler) List(c *gin.Context) {
	var query dto.ApplicantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}

	applicants, pagination, err := h.applicants.List(c.Request.Context(), middleware.CurrentUser(c), query.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants, pagination)
}

// Upload godoc
// @Summary Upload an applicant spreadsheet for background import
// @Tags Applicants
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or Excel file"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /applicants/upload [post]
func (h *ApplicantHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.ErrMissingFile)
		return
	}
	defer file.Close()

	job, err := h.imports.Upload(c.Request.Context(), middleware.CurrentUser(c), header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, dto.UploadResponse{
		JobID:   job.ID,
		Status:  string(job.Status),
		Message: "import queued",
	})
}

// Export godoc
// @Summary Export applicants as CSV or the KPI summary as PDF
// @Tags Applicants
// @Produce application/octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /applicants/export [get]
func (h *ApplicantHandler) Export(c *gin.Context) {
	var query dto.ApplicantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	filter := query.ToFilter()
	actor := middleware.CurrentUser(c)

	var (
		payload     []byte
		filename    string
		contentType string
		err         error
	)
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		payload, filename, err = h.exports.ApplicantsCSV(c.Request.Context(), actor, filter)
		contentType = "text/csv"
	case "pdf":
		payload, filename, err = h.exports.KPISummaryPDF(c.Request.Context(), actor, filter)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}
