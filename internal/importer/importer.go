// Package importer implements the applicant bulk-import pipeline:
// decoding uploaded CSV/spreadsheet files, coercing rows onto the
// declared schema and writing them to the store in fixed-size chunks.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/let-tech/applicant-dashboard-api/internal/schema"
	appErrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

// Importer streams an uploaded file through header normalization, row
// coercion and the batch loader. It runs on the background queue, never
// inside a request.
type Importer struct {
	store     bulkInserter
	batchSize int
	logger    *zap.Logger
}

// New constructs an Importer writing through the given store.
func New(store bulkInserter, batchSize int, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{store: store, batchSize: batchSize, logger: logger}
}

// ProcessFile ingests the file at path and returns the number of rows
// persisted. The temporary source file is removed on every exit path,
// whether decoding succeeded or not. An unsupported extension is a
// client error, not a silent no-op.
func (imp *Importer) ProcessFile(ctx context.Context, path string) (int, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			imp.logger.Warn("failed to remove uploaded file", zap.String("path", path), zap.Error(err))
		}
	}()

	loader := NewBatchLoader(imp.store, imp.batchSize)

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = imp.processCSV(ctx, path, loader)
	case ".xlsx", ".xls":
		err = imp.processExcel(ctx, path, loader)
	default:
		return 0, appErrors.Clone(appErrors.ErrUnsupportedFormat,
			"unsupported upload format "+filepath.Ext(path))
	}
	if err != nil {
		return loader.Total(), err
	}

	if err := loader.Flush(ctx); err != nil {
		return loader.Total(), err
	}
	return loader.Total(), nil
}

func (imp *Importer) processCSV(ctx context.Context, path string, loader *BatchLoader) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	headers := schema.NormalizeHeaders(header)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := loader.Add(ctx, *CoerceRow(rowFromRecord(headers, record))); err != nil {
			return err
		}
	}
}

func (imp *Importer) processExcel(ctx context.Context, path string, loader *BatchLoader) error {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer book.Close() //nolint:errcheck

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := book.Rows(sheets[0])
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck

	var headers []string
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		if headers == nil {
			headers = schema.NormalizeHeaders(cols)
			continue
		}
		if err := loader.Add(ctx, *CoerceRow(rowFromRecord(headers, cols))); err != nil {
			return err
		}
	}
	return rows.Error()
}

// rowFromRecord maps cells positionally onto the normalized header row.
// Cells beyond the header count are dropped; header positions beyond
// the row length stay absent.
func rowFromRecord(headers []string, record []string) map[string]interface{} {
	row := make(map[string]interface{}, len(headers))
	for i, cell := range record {
		if i >= len(headers) {
			break
		}
		row[headers[i]] = cell
	}
	return row
}
