package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-tech/applicant-dashboard-api/internal/middleware"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type fakeApplicantSrv struct {
	applicants []models.Applicant
	pagination *models.Pagination
	err        error
	lastFilter models.ApplicantFilter
}

func (f *fakeApplicantSrv) List(_ context.Context, _ *models.JWTClaims, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error) {
	f.lastFilter = filter
	return f.applicants, f.pagination, f.err
}

type fakeUploader struct {
	job      *models.ImportJob
	err      error
	filename string
}

func (f *fakeUploader) Upload(_ context.Context, _ *models.JWTClaims, filename string, _ io.Reader) (*models.ImportJob, error) {
	f.filename = filename
	return f.job, f.err
}

type fakeExporter struct {
	csvPayload []byte
	pdfPayload []byte
}

func (f *fakeExporter) ApplicantsCSV(context.Context, *models.JWTClaims, models.ApplicantFilter) ([]byte, string, error) {
	return f.csvPayload, "applicants.csv", nil
}

func (f *fakeExporter) KPISummaryPDF(context.Context, *models.JWTClaims, models.ApplicantFilter) ([]byte, string, error) {
	return f.pdfPayload, "summary.pdf", nil
}

func TestApplicantHandlerList(t *testing.T) {
	srv := &fakeApplicantSrv{
		applicants: []models.Applicant{{ID: 1}},
		pagination: &models.Pagination{Page: 1, PageSize: 50, Total: 1, TotalPages: 1},
	}
	h := NewApplicantHandler(srv, &fakeUploader{}, &fakeExporter{})

	c, rec := testContext(t, http.MethodGet, "/applicants?status=Enrolled&page=2&page_size=25&search=ada")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Enrolled", srv.lastFilter.Status)
	assert.Equal(t, "ada", srv.lastFilter.Search)
	assert.Equal(t, 2, srv.lastFilter.Page)
	assert.Equal(t, 25, srv.lastFilter.PageSize)
}

func TestApplicantHandlerListParsesDates(t *testing.T) {
	srv := &fakeApplicantSrv{pagination: &models.Pagination{}}
	h := NewApplicantHandler(srv, &fakeUploader{}, &fakeExporter{})

	c, rec := testContext(t, http.MethodGet, "/applicants?date_from=2024-01-01&date_to=2024-06-30")
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastFilter.DateFrom)
	require.NotNil(t, srv.lastFilter.DateTo)
	assert.Equal(t, 2024, srv.lastFilter.DateFrom.Year())
	assert.Equal(t, 6, int(srv.lastFilter.DateTo.Month()))
}

func TestApplicantHandlerListRejectsBadPageSize(t *testing.T) {
	h := NewApplicantHandler(&fakeApplicantSrv{}, &fakeUploader{}, &fakeExporter{})

	c, rec := testContext(t, http.MethodGet, "/applicants?page_size=9999")
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartUpload(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestApplicantHandlerUpload(t *testing.T) {
	uploader := &fakeUploader{job: &models.ImportJob{ID: "job-1", Status: models.ImportStatusQueued}}
	h := NewApplicantHandler(&fakeApplicantSrv{}, uploader, &fakeExporter{})

	body, contentType := multipartUpload(t, "file", "applicants.csv", "first_name\nAda\n")
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/applicants/upload", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "staff-1", Role: models.RoleStaff})

	h.Upload(c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "applicants.csv", uploader.filename)
	assert.Contains(t, rec.Body.String(), "job-1")
}

func TestApplicantHandlerUploadMissingFile(t *testing.T) {
	h := NewApplicantHandler(&fakeApplicantSrv{}, &fakeUploader{}, &fakeExporter{})

	c, rec := testContext(t, http.MethodPost, "/applicants/upload")
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicantHandlerUploadServiceError(t *testing.T) {
	uploader := &fakeUploader{err: apperrors.ErrForbidden}
	h := NewApplicantHandler(&fakeApplicantSrv{}, uploader, &fakeExporter{})

	body, contentType := multipartUpload(t, "file", "applicants.csv", "x")
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/applicants/upload", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Upload(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApplicantHandlerExportCSV(t *testing.T) {
	exporter := &fakeExporter{csvPayload: []byte("a,b\n1,2\n")}
	h := NewApplicantHandler(&fakeApplicantSrv{}, &fakeUploader{}, exporter)

	c, rec := testContext(t, http.MethodGet, "/applicants/export?format=csv")
	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "applicants.csv")
}

func TestApplicantHandlerExportPDF(t *testing.T) {
	exporter := &fakeExporter{pdfPayload: []byte("%PDF-1.4")}
	h := NewApplicantHandler(&fakeApplicantSrv{}, &fakeUploader{}, exporter)

	c, rec := testContext(t, http.MethodGet, "/applicants/export?format=pdf")
	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestApplicantHandlerExportUnknownFormat(t *testing.T) {
	h := NewApplicantHandler(&fakeApplicantSrv{}, &fakeUploader{}, &fakeExporter{})

	c, rec := testContext(t, http.MethodGet, "/applicants/export?format=xml")
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
