// Package errors provides structured error types for chartkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, HTTP server and Lambda
//   - Machine-readable error codes for programmatic handling
//   - Structured field references for malformed chart specifications
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Compile-time failures are deterministic functions of the input:
//   - UNSUPPORTED_KIND: chart kind is not bar, line or pie
//   - MALFORMED_SPEC: a required field is missing or inconsistent ([Error.Field] names it)
//
// Boundary failures come from the artifact store, cache or HTTP layer:
//   - STORE_ERROR, CACHE_ERROR, NOT_FOUND, UNAUTHORIZED, INTERNAL_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedKind, "unsupported chart type: %s", kind)
//	if errors.Is(err, errors.ErrCodeUnsupportedKind) {
//	    // reject the request
//	}
//
//	err := errors.Field("data.labels", "labels are required")
//	errors.FieldOf(err) // "data.labels"
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Specification errors
	ErrCodeUnsupportedKind Code = "UNSUPPORTED_KIND"
	ErrCodeMalformedSpec   Code = "MALFORMED_SPEC"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Boundary errors
	ErrCodeStore Code = "STORE_ERROR"
	ErrCodeCache Code = "CACHE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Field   string // Offending specification field (MALFORMED_SPEC only)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Field creates a MALFORMED_SPEC error naming the offending field.
// Field names use dotted JSON paths, e.g. "data.datasets[2].data".
func Field(field, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeMalformedSpec,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldOf returns the offending field of a MALFORMED_SPEC error, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Field != "" {
			return e.Field + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// IsSpecError reports whether err is caused by the chart specification itself
// rather than by the environment. Such errors reproduce identically on retry.
func IsSpecError(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnsupportedKind, ErrCodeMalformedSpec, ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return true
	}
	return false
}
