// Package apperror defines the failure taxonomy shared by services, storage
// backends and HTTP handlers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable is returned when a backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned when a referenced user, challenge or share is absent.
	ErrNotFound = errors.New("not found")
	// ErrUserNotFound is the ErrNotFound returned when a challenge names an
	// author that has no user record.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrForbidden is returned when the requesting identity does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrShareCreationFailed is returned when a share link could not be recorded
	// after the challenge itself was stored.
	ErrShareCreationFailed = errors.New("share creation failed")
)

// ValidationError describes malformed or constraint-violating input.
// Segment is the zero-based index of the offending segment, or -1 when the
// problem is not tied to a segment.
type ValidationError struct {
	Segment int
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Segment >= 0 {
		return fmt.Sprintf("segment %d: %s", e.Segment, e.Reason)
	}
	return e.Reason
}

// Invalid builds a ValidationError for a top-level field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Segment: -1, Field: field, Reason: reason}
}

// InvalidSegment builds a ValidationError pointing at segment i.
func InvalidSegment(i int, field, reason string) *ValidationError {
	return &ValidationError{Segment: i, Field: field, Reason: reason}
}

// StoreUnavailable wraps a driver failure so that it matches ErrStoreUnavailable
// while keeping the cause reachable through errors.Is/As.
func StoreUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
