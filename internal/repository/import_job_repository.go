package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// ImportJobRepository persists import job metadata so reporting views
// can observe import outcomes asynchronously.
type ImportJobRepository struct {
	db *sqlx.DB
}

// NewImportJobRepository constructs the repository.
func NewImportJobRepository(db *sqlx.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

// Create inserts a new import job row with generated defaults.
func (r *ImportJobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ImportStatusQueued
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO import_jobs (id, filename, file_path, status, rows_imported, error_message, created_by, created_at, finished_at)
        VALUES (:id, :filename, :file_path, :status, :rows_imported, :error_message, :created_by, :created_at, :finished_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create import job: %w", err)
	}
	return nil
}

// GetByID returns a job row by its identifier, or nil when absent.
func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	const query = `SELECT id, filename, file_path, status, rows_imported, error_message, created_by, created_at, finished_at
        FROM import_jobs WHERE id = $1`
	var job models.ImportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}
	return &job, nil
}

// Latest returns the most recently created job, or nil when no import
// has ever run.
func (r *ImportJobRepository) Latest(ctx context.Context) (*models.ImportJob, error) {
	const query = `SELECT id, filename, file_path, status, rows_imported, error_message, created_by, created_at, finished_at
        FROM import_jobs ORDER BY created_at DESC LIMIT 1`
	var job models.ImportJob
	if err := r.db.GetContext(ctx, &job, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest import job: %w", err)
	}
	return &job, nil
}

// MarkProcessing flips a queued job to PROCESSING.
func (r *ImportJobRepository) MarkProcessing(ctx context.Context, id string) error {
	const query = `UPDATE import_jobs SET status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ImportStatusProcessing); err != nil {
		return fmt.Errorf("mark import job processing: %w", err)
	}
	return nil
}

// MarkFinished records a successful completion and the row count.
func (r *ImportJobRepository) MarkFinished(ctx context.Context, id string, rowsImported int) error {
	const query = `UPDATE import_jobs SET status = $2, rows_imported = $3, finished_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ImportStatusFinished, rowsImported, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark import job finished: %w", err)
	}
	return nil
}

// MarkFailed records a fatal import error.
func (r *ImportJobRepository) MarkFailed(ctx context.Context, id string, message string) error {
	const query = `UPDATE import_jobs SET status = $2, error_message = $3, finished_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ImportStatusFailed, message, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark import job failed: %w", err)
	}
	return nil
}
