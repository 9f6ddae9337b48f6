package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
	"github.com/let-tech/applicant-dashboard-api/pkg/jobs"
)

// ImportJobType labels applicant file imports on the job queue.
const ImportJobType = "applicant_import"

type importJobStore interface {
	Create(ctx context.Context, job *models.ImportJob) error
	GetByID(ctx context.Context, id string) (*models.ImportJob, error)
	Latest(ctx context.Context) (*models.ImportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id string, rowsImported int) error
	MarkFailed(ctx context.Context, id string, message string) error
}

type uploadStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
}

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type fileProcessor interface {
	ProcessFile(ctx context.Context, path string) (int, error)
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type importMetrics interface {
	ObserveImport(rows int, duration time.Duration, failed bool)
}

// ImportService accepts applicant file uploads, persists a job record, and
// runs the normalization pipeline from the queue worker.
type ImportService struct {
	jobsRepo  importJobStore
	storage   uploadStore
	queue     jobDispatcher
	processor fileProcessor
	dashboard cacheInvalidator
	metrics   importMetrics
	logger    *zap.Logger
}

func NewImportService(jobsRepo importJobStore, storage uploadStore, queue jobDispatcher,
	processor fileProcessor, dashboard cacheInvalidator, metrics importMetrics, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		jobsRepo:  jobsRepo,
		storage:   storage,
		queue:     queue,
		processor: processor,
		dashboard: dashboard,
		metrics:   metrics,
		logger:    logger,
	}
}

// supportedExtensions mirrors what the pipeline can decode. Checking at
// upload time turns a doomed job into a synchronous client error.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// Upload stores the file, records a queued job and hands it to the worker
// pool. Only staff users may trigger imports.
func (s *ImportService) Upload(ctx context.Context, actor *models.JWTClaims, filename string, content io.Reader) (*models.ImportJob, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !actor.IsStaff() {
		return nil, apperrors.ErrForbidden
	}
	if filename == "" || content == nil {
		return nil, apperrors.ErrMissingFile
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedExtensions[ext] {
		return nil, apperrors.Clone(apperrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported file format %q, expected .csv, .xlsx or .xls", ext))
	}

	// Prefix with the job id so concurrent uploads of the same file never
	// clobber each other on disk.
	jobID := uuid.NewString()
	path, err := s.storage.SaveStream(jobID+"_"+filepath.Base(filename), content)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	job := &models.ImportJob{
		ID:        jobID,
		Filename:  filepath.Base(filename),
		FilePath:  path,
		Status:    models.ImportStatusQueued,
		CreatedBy: actor.UserID,
	}
	if err := s.jobsRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: ImportJobType, Payload: path}); err != nil {
		if markErr := s.jobsRepo.MarkFailed(ctx, job.ID, "could not enqueue import"); markErr != nil {
			s.logger.Error("failed to mark unenqueued job", zap.String("job_id", job.ID), zap.Error(markErr))
		}
		return nil, fmt.Errorf("enqueue import: %w", err)
	}

	s.logger.Info("import queued",
		zap.String("job_id", job.ID),
		zap.String("filename", job.Filename),
		zap.String("created_by", job.CreatedBy))
	return job, nil
}

// ProcessJob is the queue handler. It runs the file through the pipeline
// and records the outcome on the job row.
func (s *ImportService) ProcessJob(ctx context.Context, job jobs.Job) error {
	// The source file is removed after the first attempt, so a queue
	// retry of a failed job cannot succeed. Skip it instead of letting
	// the rerun replace the recorded failure cause with a missing-file
	// error.
	if current, err := s.jobsRepo.GetByID(ctx, job.ID); err != nil {
		return err
	} else if current != nil && current.Status == models.ImportStatusFailed {
		s.logger.Warn("skipping rerun of failed import", zap.String("job_id", job.ID))
		return nil
	}

	if err := s.jobsRepo.MarkProcessing(ctx, job.ID); err != nil {
		return err
	}

	start := time.Now()
	rows, err := s.processor.ProcessFile(ctx, job.Payload)
	if s.metrics != nil {
		s.metrics.ObserveImport(rows, time.Since(start), err != nil)
	}
	if err != nil {
		s.logger.Error("import failed", zap.String("job_id", job.ID), zap.Error(err))
		if markErr := s.jobsRepo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			s.logger.Error("failed to record import failure", zap.String("job_id", job.ID), zap.Error(markErr))
		}
		return err
	}

	if err := s.jobsRepo.MarkFinished(ctx, job.ID, rows); err != nil {
		return err
	}
	if s.dashboard != nil {
		s.dashboard.InvalidateCache(ctx)
	}
	s.logger.Info("import finished",
		zap.String("job_id", job.ID),
		zap.Int("rows_imported", rows),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Status returns one job row by id.
func (s *ImportService) Status(ctx context.Context, id string) (*models.ImportJob, error) {
	job, err := s.jobsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperrors.ErrNotFound
	}
	return job, nil
}

// Latest returns the most recently created job, or ErrNotFound when no
// import has ever run.
func (s *ImportService) Latest(ctx context.Context) (*models.ImportJob, error) {
	job, err := s.jobsRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperrors.ErrNotFound
	}
	return job, nil
}
