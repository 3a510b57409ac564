package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csc-gandhinagar/stipend-flow/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilSession      = errors.New("session cannot be nil")
	ErrInvalidStatus   = errors.New("invalid applicant status")
	ErrDuplicateID     = errors.New("duplicate applicant id")
	ErrNegativeID      = errors.New("applicant id cannot be negative")
	ErrMissingFieldMap = errors.New("applicant field map cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSession checks the invariants the store relies on: unique
// non-negative ids, known statuses, and present field maps.
func validateSession(session *model.Session) error {
	if session == nil {
		return ErrNilSession
	}

	seen := make(map[int]bool, len(session.Applicants))
	for i := range session.Applicants {
		a := &session.Applicants[i]
		if a.ID < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeID, a.ID)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = true
		if !model.ValidStatus(a.Status) {
			return fmt.Errorf("%w: %q on applicant %d", ErrInvalidStatus, a.Status, a.ID)
		}
		if a.Fields == nil || a.OriginalFields == nil {
			return fmt.Errorf("%w: applicant %d", ErrMissingFieldMap, a.ID)
		}
	}

	return nil
}
