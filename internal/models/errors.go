package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes a service call can produce. Services wrap
// these with context via fmt.Errorf("...: %w", ...); handlers unwrap with
// errors.Is to pick the HTTP status and machine code.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
)

// ErrBookingConflict marks a date-overlap rejection from booking admission.
// It unwraps to ErrConflict, so the HTTP status mapping is shared with other
// conflicts while the machine code stays specific to the admission path.
var ErrBookingConflict = fmt.Errorf("booking: %w", ErrConflict)

// ErrorCode returns the stable machine-readable code for an error kind.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrBookingConflict):
		return "booking_conflict"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal_error"
	}
}
