package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type fakeImportReader struct {
	job    *models.ImportJob
	err    error
	lastID string
}

func (f *fakeImportReader) Status(_ context.Context, id string) (*models.ImportJob, error) {
	f.lastID = id
	return f.job, f.err
}

func (f *fakeImportReader) Latest(context.Context) (*models.ImportJob, error) {
	return f.job, f.err
}

func TestImportHandlerStatus(t *testing.T) {
	srv := &fakeImportReader{job: &models.ImportJob{ID: "job-1", Status: models.ImportStatusFinished, RowsImported: 42}}
	h := NewImportHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/imports/job-1")
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	h.Status(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "job-1", srv.lastID)
	assert.Contains(t, rec.Body.String(), "FINISHED")
}

func TestImportHandlerStatusNotFound(t *testing.T) {
	h := NewImportHandler(&fakeImportReader{err: apperrors.ErrNotFound})

	c, rec := testContext(t, http.MethodGet, "/imports/ghost")
	h.Status(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportHandlerLatest(t *testing.T) {
	srv := &fakeImportReader{job: &models.ImportJob{ID: "job-7", Status: models.ImportStatusProcessing}}
	h := NewImportHandler(srv)

	c, rec := testContext(t, http.MethodGet, "/imports/latest")
	h.Latest(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PROCESSING")
}
