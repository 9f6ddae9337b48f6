package dto

import (
	"time"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// ApplicantListQuery binds the listing and aggregation query parameters.
// Dates arrive as calendar days.
type ApplicantListQuery struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Status   string `form:"status" binding:"omitempty,max=100"`
	Course   string `form:"course" binding:"omitempty,max=512"`
	Gender   string `form:"gender" binding:"omitempty,max=50"`
	Region   string `form:"region" binding:"omitempty,max=100"`
	Search   string `form:"search" binding:"omitempty,max=200"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ToFilter converts the validated query into the internal filter model.
func (q ApplicantListQuery) ToFilter() models.ApplicantFilter {
	filter := models.ApplicantFilter{
		Status:   q.Status,
		Course:   q.Course,
		Gender:   q.Gender,
		Region:   q.Region,
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
			filter.DateFrom = &t
		}
	}
	if q.DateTo != "" {
		if t, err := time.Parse("2006-01-02", q.DateTo); err == nil {
			filter.DateTo = &t
		}
	}
	return filter
}

// UploadResponse acknowledges an accepted import upload.
type UploadResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
