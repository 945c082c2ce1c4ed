package core

import (
	"errors"
	"fmt"
)

// =============================================================================
// ErrorKind: Classification of engine failures
// =============================================================================

// ErrorKind classifies failures raised by the engine or by the host layers
// built on top of it.
//
// The engine itself only produces ErrorKindExecutionFailed (timeout, operation
// failure, exhausted retries) and ErrorKindDonationFailed (sink failure or
// aggregated batch failure). MissingInput and ValidationFailed are reserved
// for the intent-supplying layer so the whole stack shares one taxonomy.
type ErrorKind int

const (
	ErrorKindMissingInput ErrorKind = iota
	ErrorKindValidationFailed
	ErrorKindDonationFailed
	ErrorKindExecutionFailed
)

// String returns a stable lowercase name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindMissingInput:
		return "missing input"
	case ErrorKindValidationFailed:
		return "validation failed"
	case ErrorKindDonationFailed:
		return "donation failed"
	case ErrorKindExecutionFailed:
		return "execution failed"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by the engine.
// It carries a kind, a human-readable description, and the wrapped cause.
type Error struct {
	kind  ErrorKind
	msg   string
	cause error
}

func newError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{
		kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		cause: cause,
	}
}

// NewExecutionFailed creates an ErrorKindExecutionFailed error wrapping cause.
// cause may be nil when there is no underlying error to embed.
func NewExecutionFailed(cause error, format string, args ...any) *Error {
	return newError(ErrorKindExecutionFailed, cause, format, args...)
}

// NewDonationFailed creates an ErrorKindDonationFailed error wrapping cause.
func NewDonationFailed(cause error, format string, args ...any) *Error {
	return newError(ErrorKindDonationFailed, cause, format, args...)
}

// NewMissingInput creates an ErrorKindMissingInput error wrapping cause.
func NewMissingInput(cause error, format string, args ...any) *Error {
	return newError(ErrorKindMissingInput, cause, format, args...)
}

// NewValidationFailed creates an ErrorKindValidationFailed error wrapping cause.
func NewValidationFailed(cause error, format string, args ...any) *Error {
	return newError(ErrorKindValidationFailed, cause, format, args...)
}

// Kind returns the error classification.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// Error renders "<kind>: <msg>: <cause>", omitting the cause when nil.
func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.kind, e.msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.cause)
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err (or anything it wraps) is an engine Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var engineErr *Error
	for errors.As(err, &engineErr) {
		if engineErr.kind == kind {
			return true
		}
		if engineErr.cause == nil {
			return false
		}
		err = engineErr.cause
	}
	return false
}

// IsExecutionFailed reports whether err carries ErrorKindExecutionFailed.
func IsExecutionFailed(err error) bool {
	return IsKind(err, ErrorKindExecutionFailed)
}

// IsDonationFailed reports whether err carries ErrorKindDonationFailed.
func IsDonationFailed(err error) bool {
	return IsKind(err, ErrorKindDonationFailed)
}
