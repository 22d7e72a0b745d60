// Package errors provides structured error types for the carousel engine.
//
// Errors carry a machine-readable [Code] next to a human-readable message so
// the CLI, the HTTP server and library callers can branch on the category of
// a failure without string matching.
//
// # Error Codes
//
//   - INVALID_*: configuration or input validation failures
//   - NOT_FOUND: missing catalogs, files or items
//   - RESOURCE_LOAD: an item's image could not be loaded (presentation layer only)
//   - INTERNAL_ERROR / UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "item base size must be positive, got %v", size)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // refuse to build the carousel
//	}
//
//	err = errors.Wrap(errors.ErrCodeResourceLoad, decodeErr, "load %s", src)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeResourceLoad Code = "RESOURCE_LOAD"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfiguration reports whether err is a configuration error. Configuration
// errors are fatal: the carousel refuses to build.
func IsConfiguration(err error) bool {
	return Is(err, ErrCodeInvalidConfig)
}

// IsResourceLoad reports whether err describes an image that failed to load.
func IsResourceLoad(err error) bool {
	return Is(err, ErrCodeResourceLoad)
}

// HTTPStatus maps an error code to the HTTP status the server answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInvalidInput, ErrCodeInvalidFormat,
		ErrCodeInvalidSource, ErrCodeInvalidPath:
		return 400
	case ErrCodeNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
