// Package errors provides structured error types for gridlayout.
//
// Every failure the layout engine can report is a precondition violation
// detected before or at the start of a run. Errors carry a machine-readable
// [Code] so the CLI and the HTTP API can react to the category without
// parsing messages.
//
// # Error Codes
//
//   - INVALID_*: malformed input, configuration or layouts
//   - INFEASIBLE: the problem cannot be laid out at all (too many nodes,
//     edges referencing unknown nodes)
//   - NO_VACANCY: the grid has no free cell to move a node to
//   - NOT_FOUND: a stored run does not exist
//   - INTERNAL: unexpected failures (matrix shape mismatches and the like)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInfeasible, "%d nodes exceed %d cells", n, cells)
//	if errors.Is(err, errors.ErrCodeInfeasible) {
//	    // reject the request
//	}
//
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode graph %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Problem feasibility errors
	ErrCodeInfeasible Code = "INFEASIBLE"
	ErrCodeNoVacancy  Code = "NO_VACANCY"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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
