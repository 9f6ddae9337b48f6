package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	"github.com/let-tech/applicant-dashboard-api/pkg/response"
)

type importJobReader interface {
	Status(ctx context.Context, id string) (*models.ImportJob, error)
	Latest(ctx context.Context) (*models.ImportJob, error)
}

// ImportHandler exposes import job status endpoints.
type ImportHandler struct {
	imports importJobReader
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(imports importJobReader) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// Status godoc
// @Summary Get one import job by id
// @Tags Imports
// @Produce json
// @Param id path string true "Import job ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /imports/{id} [get]
func (h *ImportHandler) Status(c *gin.Context) {
	job, err := h.imports.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Latest godoc
// @Summary Get the most recent import job
// @Tags Imports
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /imports/latest [get]
func (h *ImportHandler) Latest(c *gin.Context) {
	job, err := h.imports.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}
