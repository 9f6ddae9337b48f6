package models

import "time"

// Applicant is one normalized intake row for a single program applicant.
// The source spreadsheets are inconsistent, so every field is nullable;
// text values are truncated to the lengths declared in the schema
// descriptor before they reach this struct.
type Applicant struct {
	ID                     int64      `db:"id" json:"id"`
	ApplicationID          *string    `db:"application_id" json:"application_id"`
	ProgramKey             *string    `db:"program_key" json:"program_key"`
	NDTitle                *string    `db:"nd_title" json:"nd_title"`
	UserID                 *string    `db:"user_id" json:"user_id"`
	FirstName              *string    `db:"first_name" json:"first_name"`
	LastName               *string    `db:"last_name" json:"last_name"`
	Email                  *string    `db:"email" json:"email"`
	NDKey                  *string    `db:"nd_key" json:"nd_key"`
	CompanyID              *string    `db:"company_id" json:"company_id"`
	CompanyName            *string    `db:"company_name" json:"company_name"`
	CountryAtRegistration  *string    `db:"country_at_registration" json:"country_at_registration"`
	ApplicationStatus      *string    `db:"application_status" json:"application_status"`
	ApplicationSubmittedAt *time.Time `db:"application_submitted_at" json:"application_submitted_at"`
	ApplicationCreatedAt   *time.Time `db:"application_created_at" json:"application_created_at"`
	ApplicantUpdatedAt     *time.Time `db:"applicant_updated_at" json:"applicant_updated_at"`
	HeardAboutProgram      *string    `db:"heard_about_program" json:"heard_about_program"`
	ExperienceYears        *string    `db:"experience_years" json:"experience_years"`
	TermsAgreement         *string    `db:"terms_agreement" json:"terms_agreement"`
	EmployerName           *string    `db:"employer_name" json:"employer_name"`
	Age                    *string    `db:"age" json:"age"`
	PhoneNumber            *string    `db:"phone_number" json:"phone_number"`
	Nationality            *string    `db:"nationality" json:"nationality"`
	Region                 *string    `db:"region" json:"region"`
	EducationLevel         *string    `db:"education_level" json:"education_level"`
	EducationInstitution   *string    `db:"education_institution" json:"education_institution"`
	EmploymentStatus       *string    `db:"employment_status" json:"employment_status"`
	FieldOfStudy           *string    `db:"field_of_study" json:"field_of_study"`
	Gender                 *string    `db:"gender" json:"gender"`
	PrimaryReason          *string    `db:"primary_reason" json:"primary_reason"`
}

// ApplicantFilter captures the optional listing and aggregation criteria.
// Empty criteria are no-ops; all present criteria combine with AND.
type ApplicantFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   string
	Course   string
	Gender   string
	Region   string
	Search   string
	Page     int
	PageSize int
}

// Pagination bounds for list endpoints.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// GroupCount is one (label, count) pair of a categorical breakdown.
type GroupCount struct {
	Label string `db:"label" json:"name"`
	Count int    `db:"count" json:"value"`
}

// KPICounts carries the raw counts behind the dashboard KPI block.
type KPICounts struct {
	Total     int `db:"total"`
	Active    int `db:"active"`
	Completed int `db:"completed"`
}

// FilterOptions lists the distinct dropdown values discovered in the store.
type FilterOptions struct {
	Statuses []string `json:"statuses"`
	Regions  []string `json:"regions"`
	Courses  []string `json:"courses"`
	Genders  []string `json:"genders"`
}
