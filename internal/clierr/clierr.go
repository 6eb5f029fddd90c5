// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripted consumers.
package clierr

import (
	"errors"
	"fmt"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	IndexOutOfRange    = "INDEX_OUT_OF_RANGE"
	BoardNotFound      = "BOARD_NOT_FOUND"
	BoardAlreadyExists = "BOARD_ALREADY_EXISTS"
	InvalidInput       = "INVALID_INPUT"
	InvalidIndex       = "INVALID_INDEX"
	InvalidDays        = "INVALID_DAYS"
	InvalidWeight      = "INVALID_WEIGHT"
	UnknownCommand     = "UNKNOWN_COMMAND"
	NoChanges          = "NO_CHANGES"
	NoTasks            = "NO_TASKS"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	InternalError      = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// As returns the *Error wrapped by err, if any.
func As(err error) (*Error, bool) {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr, true
	}
	return nil, false
}

// HasCode reports whether err wraps an *Error carrying code.
func HasCode(err error, code string) bool {
	cliErr, ok := As(err)
	return ok && cliErr.Code == code
}
