// Package errors provides centralized error definitions and error handling
// utilities for the bulkhead codebase. It defines the panic-derived error
// type produced by containment boundaries, a transient marker consumed by
// retry policies, and error classification helpers.
//
// # Error Types
//
//   - PanicError: an error recovered from a panic during a construction pass
//   - TransientError: wraps an error to mark it as transient (retryable)
//   - ConfigError: invalid configuration values
//
// # Usage
//
// Creating errors:
//
//	// From a recovered panic value
//	err := errors.FromPanic(recovered, debug.Stack())
//
//	// Marking a failure as transient so a retry policy will re-attempt it
//	panic(errors.NewTransient(errors.New("feed temporarily unavailable")))
//
// Checking errors:
//
//	if errors.IsTransient(err) { ... }
//
//	var panicErr *errors.PanicError
//	if errors.As(err, &panicErr) { ... }
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

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Sentinel errors.
var (
	// ErrNilChild indicates a boundary was constructed without a child model.
	ErrNilChild = New("boundary child cannot be nil")
	// ErrRetryExhausted indicates a retry policy has used its full attempt budget.
	ErrRetryExhausted = New("retry budget exhausted")
	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = New("invalid configuration")
)

// -----------------------------------------------------------------------------
// PanicError
// -----------------------------------------------------------------------------

// PanicError is an error derived from a value recovered during a construction
// pass. It preserves the original panic value and the stack captured at the
// recovery site.
//
// Example:
//
//	err := errors.FromPanic(recovered, debug.Stack())
//	fmt.Println(err) // "panic: something broke"
type PanicError struct {
	// Value is the original value passed to panic.
	Value any
	// Stack is the goroutine stack captured at the recovery site.
	Stack []byte
}

// FromPanic converts a recovered panic value into a PanicError.
// If the value is already an error it is preserved as the cause so that
// errors.Is and errors.As see through to it.
func FromPanic(value any, stack []byte) *PanicError {
	return &PanicError{Value: value, Stack: stack}
}

// Error returns the formatted error message.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error, nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Severity returns the error severity. Panics are always errors.
func (e *PanicError) Severity() Severity {
	return SeverityError
}

// -----------------------------------------------------------------------------
// TransientError
// -----------------------------------------------------------------------------

// TransientError marks an error as transient: the failing operation may
// succeed if attempted again. Retry policies use this marker as their default
// classifier.
type TransientError struct {
	cause error
}

// NewTransient wraps an error with the transient marker.
func NewTransient(cause error) *TransientError {
	return &TransientError{cause: cause}
}

// Transientf creates a transient error from a format string.
func Transientf(format string, args ...any) *TransientError {
	return &TransientError{cause: fmt.Errorf(format, args...)}
}

// Error returns the formatted error message.
func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.cause)
}

// Unwrap returns the underlying error.
func (e *TransientError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *TransientError) Is(target error) bool {
	if _, ok := target.(*TransientError); ok {
		return true
	}
	return errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// ConfigError
// -----------------------------------------------------------------------------

// ConfigError represents an invalid configuration value.
//
// Example:
//
//	err := errors.NewConfigError("retry.max_attempts must be non-negative")
//	err = err.WithKey("retry.max_attempts").WithValue(-1)
type ConfigError struct {
	message string
	Key     string
	Value   any
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// WithKey adds the configuration key to the error context.
func (e *ConfigError) WithKey(key string) *ConfigError {
	e.Key = key
	return e
}

// WithValue adds the offending value to the error context.
func (e *ConfigError) WithValue(value any) *ConfigError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error [key=%s]: %s", e.Key, e.message)
	}
	return fmt.Sprintf("config error: %s", e.message)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return errors.Is(target, ErrInvalidConfig)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsTransient returns true if the error (or the panic value it carries) is
// marked transient. This is the default classifier used by retry policies.
//
// Example:
//
//	if errors.IsTransient(rec.Err) {
//	    return policy.Schedule(rec)
//	}
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var transient *TransientError
	return As(err, &transient)
}

// IsPanic returns true if the error originated from a recovered panic.
func IsPanic(err error) bool {
	if err == nil {
		return false
	}
	var panicErr *PanicError
	return As(err, &panicErr)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't report their own severity.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var leveled interface{ Severity() Severity }
	if As(err, &leveled) {
		return leveled.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load config")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
