package importer

import (
	"context"

	"github.com/let-tech/applicant-dashboard-api/internal/models"
)

// DefaultBatchSize bounds memory and storage round-trips per chunk.
const DefaultBatchSize = 1000

type bulkInserter interface {
	BulkInsert(ctx context.Context, applicants []models.Applicant) error
}

// BatchLoader buffers coerced records and writes them in fixed-size
// chunks. The buffer is private to one import run; a chunk insert
// failure is fatal for the run and propagates to the caller.
type BatchLoader struct {
	store bulkInserter
	size  int
	buf   []models.Applicant
	total int
}

// NewBatchLoader builds a loader flushing every size records.
func NewBatchLoader(store bulkInserter, size int) *BatchLoader {
	if size <= 0 {
		size = DefaultBatchSize
	}
	return &BatchLoader{store: store, size: size, buf: make([]models.Applicant, 0, size)}
}

// Add buffers one record, flushing a full chunk when the threshold is
// reached.
func (l *BatchLoader) Add(ctx context.Context, applicant models.Applicant) error {
	l.buf = append(l.buf, applicant)
	if len(l.buf) >= l.size {
		return l.flush(ctx)
	}
	return nil
}

// Flush writes any remaining buffered records. Call once at end of
// stream.
func (l *BatchLoader) Flush(ctx context.Context) error {
	if len(l.buf) == 0 {
		return nil
	}
	return l.flush(ctx)
}

// Total reports how many records have been persisted so far.
func (l *BatchLoader) Total() int {
	return l.total
}

func (l *BatchLoader) flush(ctx context.Context) error {
	if err := l.store.BulkInsert(ctx, l.buf); err != nil {
		return err
	}
	l.total += len(l.buf)
	l.buf = l.buf[:0]
	return nil
}
