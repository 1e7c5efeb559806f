// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrSourceUnavailable means the deal-history source could not be
	// reached at all (missing database, connection or auth failure).
	ErrSourceUnavailable = errors.New("trade source unavailable")
	// ErrNoUsableData means the source was reachable but produced no
	// qualifying closed trades. Like ErrSourceUnavailable it is non-fatal
	// and routes to the fallback report.
	ErrNoUsableData = errors.New("no usable trade data")
	// ErrSinkWrite means the report could not be persisted. The in-memory
	// report is still valid.
	ErrSinkWrite = errors.New("report write failed")

	ErrConfigInvalid = errors.New("invalid configuration")
	ErrTimeout       = errors.New("operation timed out")
)

// SourceError wraps a failure from the deal-history source.
type SourceError struct {
	DBPath string
	Op     string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source error [%s] %s: %v", e.Op, e.DBPath, e.Err)
	}
	return fmt.Sprintf("source error [%s] %s", e.Op, e.DBPath)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is lets SourceError match ErrSourceUnavailable in errors.Is chains.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError creates a new SourceError.
func NewSourceError(op, dbPath string, err error) *SourceError {
	return &SourceError{Op: op, DBPath: dbPath, Err: err}
}

// SinkError wraps a failure writing the report.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink error %s: %v", e.Path, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// Is lets SinkError match ErrSinkWrite in errors.Is chains.
func (e *SinkError) Is(target error) bool {
	return target == ErrSinkWrite
}

// NewSinkError creates a new SinkError.
func NewSinkError(path string, err error) *SinkError {
	return &SinkError{Path: path, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
