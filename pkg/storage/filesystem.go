package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// UploadStore persists uploaded spreadsheet files on disk until the
// import pipeline has consumed them.
type UploadStore struct {
	baseDir string
}

// NewUploadStore ensures the base directory exists and returns a handle.
func NewUploadStore(baseDir string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &UploadStore{baseDir: abs}, nil
}

// SaveStream copies from reader into the target file and returns the
// absolute path of the stored file.
func (s *UploadStore) SaveStream(filename string, r io.Reader) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return path, nil
}

// Delete removes a stored file if present.
func (s *UploadStore) Delete(filename string) error {
	if err := os.Remove(s.resolve(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Path exposes the resolved absolute path for a stored filename.
func (s *UploadStore) Path(filename string) string {
	return s.resolve(filename)
}

// resolve keeps every stored file inside the base directory; path
// separators in the client-supplied name are discarded.
func (s *UploadStore) resolve(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}
