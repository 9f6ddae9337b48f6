package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/dto"
	"github.com/let-tech/applicant-dashboard-api/internal/models"
	"github.com/let-tech/applicant-dashboard-api/pkg/export"
)

type applicantLister interface {
	List(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]models.Applicant, *models.Pagination, error)
}

type kpiProvider interface {
	KPIs(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) (*dto.KPIResponse, error)
}

// ExportService renders filtered applicant data as downloadable files. It
// reuses the listing and KPI services so exports see exactly what the
// caller's dashboard shows.
type ExportService struct {
	applicants applicantLister
	kpis       kpiProvider
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

func NewExportService(applicants applicantLister, kpis kpiProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		applicants: applicants,
		kpis:       kpis,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

var applicantExportHeaders = []string{
	"application_id", "first_name", "last_name", "email", "status",
	"course", "gender", "region", "submitted_at",
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func applicantRow(a models.Applicant) map[string]string {
	row := map[string]string{
		"application_id": deref(a.ApplicationID),
		"first_name":     deref(a.FirstName),
		"last_name":      deref(a.LastName),
		"email":          deref(a.Email),
		"status":         deref(a.ApplicationStatus),
		"course":         deref(a.NDTitle),
		"gender":         deref(a.Gender),
		"region":         deref(a.Region),
	}
	if a.ApplicationSubmittedAt != nil {
		row["submitted_at"] = a.ApplicationSubmittedAt.Format("2006-01-02")
	}
	return row
}

// ApplicantsCSV exports every applicant matching the filter, page by page,
// as a CSV document.
func (s *ExportService) ApplicantsCSV(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]byte, string, error) {
	dataset := export.Dataset{Headers: applicantExportHeaders}

	filter.Page = 1
	filter.PageSize = models.MaxPageSize
	for {
		applicants, pagination, err := s.applicants.List(ctx, actor, filter)
		if err != nil {
			return nil, "", err
		}
		for _, a := range applicants {
			dataset.Rows = append(dataset.Rows, applicantRow(a))
		}
		if filter.Page >= pagination.TotalPages {
			break
		}
		filter.Page++
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", fmt.Errorf("render applicants csv: %w", err)
	}
	filename := fmt.Sprintf("applicants_%s.csv", time.Now().UTC().Format("20060102"))
	s.logger.Info("applicants exported", zap.Int("rows", len(dataset.Rows)), zap.String("format", "csv"))
	return payload, filename, nil
}

// KPISummaryPDF renders the current KPI block as a one page PDF report.
func (s *ExportService) KPISummaryPDF(ctx context.Context, actor *models.JWTClaims, filter models.ApplicantFilter) ([]byte, string, error) {
	kpis, err := s.kpis.KPIs(ctx, actor, filter)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: []map[string]string{
			{"Metric": "Total applicants", "Value": strconv.Itoa(kpis.TotalApplicants)},
			{"Metric": "Active students", "Value": strconv.Itoa(kpis.ActiveStudents)},
			{"Metric": "Completed courses", "Value": strconv.Itoa(kpis.CompletedCourses)},
			{"Metric": "Completion rate", "Value": strconv.Itoa(kpis.CompletionRate) + "%"},
		},
	}

	payload, err := s.pdf.Render(dataset, "Applicant Dashboard Summary")
	if err != nil {
		return nil, "", fmt.Errorf("render kpi pdf: %w", err)
	}
	filename := fmt.Sprintf("dashboard_summary_%s.pdf", time.Now().UTC().Format("20060102"))
	return payload, filename, nil
}
