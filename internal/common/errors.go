// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Session store errors.
	ErrNoSession     = errors.New("no working set loaded")
	ErrSessionExists = errors.New("working set already exists")

	// Resolution and validation errors.
	ErrColumnNotFound = errors.New("column not found")
	ErrInvalidMonth   = errors.New("unrecognized month token")
	ErrNotFound       = errors.New("not found")

	// Ingestion errors.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrParseFailure      = errors.New("file could not be parsed")

	// Review errors.
	ErrNotReviewable = errors.New("applicant is not awaiting review")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the user-facing message from an error chain,
// falling back to the raw error text.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
