package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// ApplicantRepository manages persistence and read queries for
// applicant records. All read paths share one filter builder so the
// listing, chart and KPI endpoints can never drift apart.
type ApplicantRepository struct {
	db *sqlx.DB
}

// NewApplicantRepository constructs an ApplicantRepository.
func NewApplicantRepository(db *sqlx.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

const applicantColumns = `id, application_id, program_key, nd_title, user_id, first_name, last_name, email,
        nd_key, company_id, company_name, country_at_registration, application_status,
        application_submitted_at, application_created_at, applicant_updated_at,
        heard_about_program, experience_years, terms_agreement, employer_name, age,
        phone_number, nationality, region, education_level, education_institution,
        employment_status, field_of_study, gender, primary_reason`

// buildConditions renders the optional criteria as conjunctive SQL
// predicates. scopeRegion pins non-staff actors to their profile region
// and is applied before any caller-supplied criterion.
func buildConditions(filter models.ApplicantFilter, scopeRegion string) ([]string, []interface{}) {
	conditions := []string{"1=1"}
	var args []interface{}

	if scopeRegion != "" {
		args = append(args, scopeRegion)
		conditions = append(conditions, fmt.Sprintf("region = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("application_submitted_at::date >= $%d::date", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("application_submitted_at::date <= $%d::date", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("LOWER(application_status) = LOWER($%d)", len(args)))
	}
	if filter.Course != "" {
		args = append(args, filter.Course)
		conditions = append(conditions, fmt.Sprintf("LOWER(nd_title) = LOWER($%d)", len(args)))
	}
	if filter.Gender != "" {
		args = append(args, filter.Gender)
		conditions = append(conditions, fmt.Sprintf("LOWER(gender) = LOWER($%d)", len(args)))
	}
	if filter.Region != "" {
		args = append(args, filter.Region)
		conditions = append(conditions, fmt.Sprintf("LOWER(region) = LOWER($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR application_id ILIKE $%d)",
			n, n, n, n))
	}

	return conditions, args
}

// List returns applicants matching the filter, newest submissions
// first, plus the total match count for pagination.
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter, scopeRegion string) ([]models.Applicant, int, error) {
	conditions, args := buildConditions(filter, scopeRegion)
	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > models.MaxPageSize {
		size = models.DefaultPageSize
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM applicants WHERE %s
        ORDER BY application_submitted_at DESC NULLS LAST LIMIT %d OFFSET %d`,
		applicantColumns, where, size, offset)

	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applicants: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM applicants WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applicants: %w", err)
	}
	return applicants, total, nil
}

// BulkInsert writes one chunk of coerced records in a single statement.
func (r *ApplicantRepository) BulkInsert(ctx context.Context, applicants []models.Applicant) error {
	if len(applicants) == 0 {
		return nil
	}
	const query = `INSERT INTO applicants (application_id, program_key, nd_title, user_id, first_name, last_name, email,
        nd_key, company_id, company_name, country_at_registration, application_status,
        application_submitted_at, application_created_at, applicant_updated_at,
        heard_about_program, experience_years, terms_agreement, employer_name, age,
        phone_number, nationality, region, education_level, education_institution,
        employment_status, field_of_study, gender, primary_reason)
        VALUES (:application_id, :program_key, :nd_title, :user_id, :first_name, :last_name, :email,
        :nd_key, :company_id, :company_name, :country_at_registration, :application_status,
        :application_submitted_at, :application_created_at, :applicant_updated_at,
        :heard_about_program, :experience_years, :terms_agreement, :employer_name, :age,
        :phone_number, :nationality, :region, :education_level, :education_institution,
        :employment_status, :field_of_study, :gender, :primary_reason)`
	if _, err := r.db.NamedExecContext(ctx, query, applicants); err != nil {
		return fmt.Errorf("bulk insert applicants: %w", err)
	}
	return nil
}

var groupableColumns = map[string]string{
	"gender": "gender",
	"status": "application_status",
	"course": "nd_title",
}

// GroupedCounts aggregates the filtered collection by the cleaned
// (trimmed, lowercased) value of a categorical column. Null and empty
// values are reported under the "Unknown" label.
func (r *ApplicantRepository) GroupedCounts(ctx context.Context, dimension string, filter models.ApplicantFilter, scopeRegion string) ([]models.GroupCount, error) {
	column, ok := groupableColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("ungroupable dimension %q", dimension)
	}
	conditions, args := buildConditions(filter, scopeRegion)
	query := fmt.Sprintf(`SELECT COALESCE(NULLIF(TRIM(LOWER(%s)), ''), 'Unknown') AS label, COUNT(*) AS count
        FROM applicants WHERE %s GROUP BY 1`, column, strings.Join(conditions, " AND "))

	var counts []models.GroupCount
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("group applicants by %s: %w", dimension, err)
	}
	return counts, nil
}

// KPICounts returns the total, active (enrolled) and completed (closed)
// counts over the filtered collection in one round trip.
func (r *ApplicantRepository) KPICounts(ctx context.Context, filter models.ApplicantFilter, scopeRegion string) (models.KPICounts, error) {
	conditions, args := buildConditions(filter, scopeRegion)
	query := fmt.Sprintf(`SELECT COUNT(*) AS total,
        COUNT(*) FILTER (WHERE LOWER(application_status) = 'enrolled') AS active,
        COUNT(*) FILTER (WHERE LOWER(application_status) = 'closed') AS completed
        FROM applicants WHERE %s`, strings.Join(conditions, " AND "))

	var counts models.KPICounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		return models.KPICounts{}, fmt.Errorf("kpi counts: %w", err)
	}
	return counts, nil
}

var optionColumns = map[string]string{
	"status": "application_status",
	"region": "region",
	"course": "nd_title",
	"gender": "gender",
}

// DistinctOptions lists the sorted distinct non-empty trimmed values of
// a column across the whole collection, folding duplicates that differ
// only by case or surrounding whitespace.
func (r *ApplicantRepository) DistinctOptions(ctx context.Context, dimension string) ([]string, error) {
	column, ok := optionColumns[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown option dimension %q", dimension)
	}
	query := fmt.Sprintf(`SELECT DISTINCT TRIM(%s) AS value FROM applicants
        WHERE %s IS NOT NULL AND TRIM(%s) <> ''`, column, column, column)

	var values []string
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		return nil, fmt.Errorf("distinct %s options: %w", dimension, err)
	}

	sort.Strings(values)
	seen := make(map[string]struct{}, len(values))
	options := values[:0]
	for _, v := range values {
		folded := strings.ToLower(v)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		options = append(options, v)
	}
	return options, nil
}
