package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	"github.com/let-tech/applicant-dashboard-api/internal/schema"
)

// CoerceRow converts one raw-row mapping (candidate key -> raw cell
// value) into an applicant record. A malformed field degrades to null;
// this never fails the surrounding import.
func CoerceRow(row map[string]interface{}) *models.Applicant {
	schema.ResolveAliases(row)

	applicant := &models.Applicant{}
	for _, field := range schema.Fields() {
		raw, ok := row[field.Key]
		if !ok || raw == nil {
			continue
		}
		switch field.Kind {
		case schema.DateTime:
			setTime(applicant, field.Key, coerceTime(raw))
		default:
			setText(applicant, field.Key, coerceText(raw, field.MaxLen))
		}
	}
	return applicant
}

// coerceTime parses permissively. Numeric values are spreadsheet
// serial-date artifacts and are discarded rather than guessed.
func coerceTime(raw interface{}) *time.Time {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" || isNumeric(s) {
			return nil
		}
		parsed, err := dateparse.ParseAny(s)
		if err != nil {
			return nil
		}
		return &parsed
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v
		return &t
	default:
		return nil
	}
}

func coerceText(raw interface{}, maxLen int) *string {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	// Limits are in characters, not bytes. Slicing bytes could cut a
	// rune in half and produce invalid UTF-8 that Postgres rejects.
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return &s
}

func isNumeric(s string) bool {
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

func setTime(a *models.Applicant, key string, value *time.Time) {
	switch key {
	case "application_submitted_at":
		a.ApplicationSubmittedAt = value
	case "application_created_at":
		a.ApplicationCreatedAt = value
	case "applicant_updated_at":
		a.ApplicantUpdatedAt = value
	}
}

func setText(a *models.Applicant, key string, value *string) {
	switch key {
	case "application_id":
		a.ApplicationID = value
	case "program_key":
		a.ProgramKey = value
	case "nd_title":
		a.NDTitle = value
	case "user_id":
		a.UserID = value
	case "first_name":
		a.FirstName = value
	case "last_name":
		a.LastName = value
	case "email":
		a.Email = value
	case "nd_key":
		a.NDKey = value
	case "company_id":
		a.CompanyID = value
	case "company_name":
		a.CompanyName = value
	case "country_at_registration":
		a.CountryAtRegistration = value
	case "application_status":
		a.ApplicationStatus = value
	case "heard_about_program":
		a.HeardAboutProgram = value
	case "experience_years":
		a.ExperienceYears = value
	case "terms_agreement":
		a.TermsAgreement = value
	case "employer_name":
		a.EmployerName = value
	case "age":
		a.Age = value
	case "phone_number":
		a.PhoneNumber = value
	case "nationality":
		a.Nationality = value
	case "region":
		a.Region = value
	case "education_level":
		a.EducationLevel = value
	case "education_institution":
		a.EducationInstitution = value
	case "employment_status":
		a.EmploymentStatus = value
	case "field_of_study":
		a.FieldOfStudy = value
	case "gender":
		a.Gender = value
	case "primary_reason":
		a.PrimaryReason = value
	}
}
