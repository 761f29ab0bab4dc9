package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Business-rule rejections. The Message carries the machine-readable reason
// clients branch on.
var (
	ErrNotApprovedForSubject = New("NOT_APPROVED_FOR_SUBJECT", http.StatusForbidden, "Not approved for this subject")
	ErrTutorNotActive        = New("TUTOR_NOT_ACTIVE", http.StatusForbidden, "tutor_not_active")
	ErrOpportunityNotOpen    = New("OPPORTUNITY_NOT_OPEN", http.StatusBadRequest, "opportunity_not_open")
	ErrOpportunityClaimed    = New("OPPORTUNITY_ALREADY_CLAIMED", http.StatusConflict, "opportunity_already_claimed")
	ErrRecordingRequired     = New("RECORDING_REQUIRED", http.StatusBadRequest, "recording_required")
	ErrTimeNotInAvailability = New("TIME_NOT_IN_AVAILABILITY", http.StatusBadRequest, "chosen_time_not_in_tutee_availability")
	ErrDurationMismatch      = New("DURATION_MISMATCH", http.StatusBadRequest, "duration_mismatch_with_tutee_preference")
	ErrCannotRecreate        = New("CANNOT_RECREATE_OPPORTUNITY", http.StatusInternalServerError, "cannot_recreate_opportunity")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
