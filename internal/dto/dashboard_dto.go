package dto

import "github.com/let-tech/applicant-dashboard-api/internal/models"

// ChartDataResponse groups the categorical breakdowns rendered as charts.
type ChartDataResponse struct {
	Gender []models.GroupCount `json:"gender"`
	Status []models.GroupCount `json:"status"`
	Course []models.GroupCount `json:"course"`
}

// KPIResponse is the dashboard headline block. CompletionRate is a whole
// percentage of applicants who are enrolled or have closed their program.
type KPIResponse struct {
	TotalApplicants  int `json:"total_applicants"`
	ActiveStudents   int `json:"active_students"`
	CompletedCourses int `json:"completed_courses"`
	CompletionRate   int `json:"completion_rate"`
}
