package models

import "time"

// ImportStatus captures the lifecycle of a background import.
type ImportStatus string

const (
	ImportStatusQueued     ImportStatus = "QUEUED"
	ImportStatusProcessing ImportStatus = "PROCESSING"
	ImportStatusFinished   ImportStatus = "FINISHED"
	ImportStatusFailed     ImportStatus = "FAILED"
)

// ImportJob is the persisted record of one file import. Reporting views
// query these rows read-only to show the last import outcome; the HTTP
// caller only ever sees the enqueue acknowledgment.
type ImportJob struct {
	ID           string       `db:"id" json:"id"`
	Filename     string       `db:"filename" json:"filename"`
	FilePath     string       `db:"file_path" json:"-"`
	Status       ImportStatus `db:"status" json:"status"`
	RowsImported int          `db:"rows_imported" json:"rows_imported"`
	ErrorMessage *string      `db:"error_message" json:"error_message,omitempty"`
	CreatedBy    string       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finished_at,omitempty"`
}
