package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-tech/applicant-dashboard-api/internal/dto"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

type fakeLister struct {
	pages [][]models.Applicant
	calls int
}

func (f *fakeLister) List(_ context.Context, _ *models.JWTClaims, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error) {
	f.calls++
	total := 0
	for _, p := range f.pages {
		total += len(p)
	}
	var page []models.Applicant
	if filter.Page-1 < len(f.pages) {
		page = f.pages[filter.Page-1]
	}
	return page, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: len(f.pages),
	}, nil
}

type fakeKPIProvider struct {
	resp dto.KPIResponse
}

func (f *fakeKPIProvider) KPIs(context.Context, *models.JWTClaims, models.ApplicantFilter) (*dto.KPIResponse, error) {
	resp := f.resp
	return &resp, nil
}

func TestExportServiceApplicantsCSV(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Applicant{{
		{
			ApplicationID:     strref("app-1"),
			FirstName:         strref("Ada"),
			LastName:          strref("Lovelace"),
			Email:             strref("ada@example.com"),
			ApplicationStatus: strref("ENROLLED"),
		},
	}}}
	svc := NewExportService(lister, &fakeKPIProvider{}, nil)

	payload, filename, err := svc.ApplicantsCSV(context.Background(), staffActor(), models.ApplicantFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	content := string(payload)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(applicantExportHeaders, ","), lines[0])
	assert.Contains(t, lines[1], "Ada")
	assert.Contains(t, lines[1], "ada@example.com")
}

func TestExportServiceApplicantsCSVWalksAllPages(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Applicant{
		{{FirstName: strref("Ada")}},
		{{FirstName: strref("Alan")}},
		{{FirstName: strref("Grace")}},
	}}
	svc := NewExportService(lister, &fakeKPIProvider{}, nil)

	payload, _, err := svc.ApplicantsCSV(context.Background(), staffActor(), models.ApplicantFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, lister.calls)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	assert.Len(t, lines, 4)
}

func TestExportServiceApplicantsCSVEmptyResult(t *testing.T) {
	lister := &fakeLister{pages: [][]models.Applicant{{}}}
	svc := NewExportService(lister, &fakeKPIProvider{}, nil)

	payload, _, err := svc.ApplicantsCSV(context.Background(), staffActor(), models.ApplicantFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	assert.Len(t, lines, 1)
}

func TestExportServiceKPISummaryPDF(t *testing.T) {
	kpis := &fakeKPIProvider{resp: dto.KPIResponse{
		TotalApplicants:  200,
		ActiveStudents:   80,
		CompletedCourses: 40,
		CompletionRate:   60,
	}}
	svc := NewExportService(&fakeLister{}, kpis, nil)

	payload, filename, err := svc.KPISummaryPDF(context.Background(), staffActor(), models.ApplicantFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	require.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func strref(s string) *string { return &s }
