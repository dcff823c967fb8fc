package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "copy.buffer_size")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// maxBufferSize caps the shared buffer at 16 MiB; larger rounds defeat
// the purpose of streaming through a single slot.
const maxBufferSize = 16 << 20

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all
// validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateCopy()...)
	errs = append(errs, c.validateWatch()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateCopy() []ValidationError {
	var errs []ValidationError

	if c.Copy.BufferSize <= 0 {
		errs = append(errs, ValidationError{
			Field:   "copy.buffer_size",
			Value:   c.Copy.BufferSize,
			Message: "must be positive",
		})
	} else if c.Copy.BufferSize > maxBufferSize {
		errs = append(errs, ValidationError{
			Field:   "copy.buffer_size",
			Value:   c.Copy.BufferSize,
			Message: fmt.Sprintf("must be at most %d", maxBufferSize),
		})
	}

	return errs
}

func (c *Config) validateWatch() []ValidationError {
	var errs []ValidationError

	if c.Watch.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce_ms",
			Value:   c.Watch.DebounceMs,
			Message: "must not be negative",
		})
	}

	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError

	level := strings.ToLower(c.Logging.Level)
	if !slices.Contains(ValidLogLevels(), level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}
