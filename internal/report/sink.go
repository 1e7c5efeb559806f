package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "mt5-reporter/internal/errors"
	"mt5-reporter/internal/models"
)

// Sink persists a finished report.
type Sink interface {
	Write(report *models.Report) error
}

// FileSink writes the report as pretty-printed JSON, replacing any
// previous file atomically so the dashboard never reads a partial
// document.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the destination path.
func (s *FileSink) Path() string {
	return s.path
}

// Write serializes the report and replaces the destination file in one
// rename.
func (s *FileSink) Write(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apperrors.NewSinkError(s.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewSinkError(s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".web_data-*.json")
	if err != nil {
		return apperrors.NewSinkError(s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewSinkError(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewSinkError(s.path, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewSinkError(s.path, err)
	}

	return nil
}
