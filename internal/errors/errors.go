// Package errors provides centralized error definitions and error handling
// utilities for the shuttle codebase. It defines domain-specific errors,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Sentinel errors represent unrecoverable programming errors:
//   - ErrSchedulerMisuse: switching to or stopping a fiber that cannot
//     legally receive control (fatal, carried in a panic)
//   - ErrSlotViolation: touching the shared buffer out of turn (fatal,
//     carried in a panic)
//
// Structured errors represent expected failure modes:
//   - StageError: an I/O failure inside a pipeline stage, carrying the
//     stage name and the byte count processed before the failure
//   - UsageError: invalid command-line invocation
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewStageError("read", bytesSoFar, ioErr)
//	err := errors.NewUsageError("expected <source> <destination>")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrSchedulerMisuse) { ... }
//
//	var stageErr *errors.StageError
//	if errors.As(err, &stageErr) { ... }
//
//	if errors.IsUsage(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors for fatal protocol violations. Both are programming
// errors: they are panicked, never returned, and must not be recovered
// into a normal control path.
var (
	// ErrSchedulerMisuse indicates a switch to or stop of a fiber that
	// cannot legally receive control.
	ErrSchedulerMisuse = New("scheduler misuse")
	// ErrSlotViolation indicates out-of-turn access to the shared buffer
	// slot.
	ErrSlotViolation = New("slot protocol violation")
)

// StageError records an I/O failure inside a pipeline stage together with
// how far the stage got before failing.
type StageError struct {
	// Stage is the failing stage's name ("read" or "write").
	Stage string
	// Bytes is the number of bytes the stage successfully processed
	// before the failure.
	Bytes int64
	// Err is the underlying I/O error.
	Err error
}

// NewStageError creates a StageError for the named stage.
func NewStageError(stage string, bytes int64, err error) *StageError {
	return &StageError{Stage: stage, Bytes: bytes, Err: err}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed after %d bytes: %v", e.Stage, e.Bytes, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// UsageError indicates an invalid command-line invocation. It maps to the
// usage exit code rather than the runtime-error exit code.
type UsageError struct {
	Message string
}

// NewUsageError creates a UsageError with the given message.
func NewUsageError(message string) *UsageError {
	return &UsageError{Message: message}
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	return e.Message
}

// IsUsage reports whether err is (or wraps) a UsageError.
func IsUsage(err error) bool {
	var usageErr *UsageError
	return As(err, &usageErr)
}

// IsStageFailure reports whether err is (or wraps) a StageError.
func IsStageFailure(err error) bool {
	var stageErr *StageError
	return As(err, &stageErr)
}
