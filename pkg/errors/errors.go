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
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "access denied")
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// ErrUnknownRole is returned when a user carries a role outside the
	// closed enumeration; it renders as the unrecognized-role view.
	ErrUnknownRole = New("UNKNOWN_ROLE", http.StatusForbidden, "role not recognized")

	// ErrGatewayUnavailable wraps any failure talking to the data gateway.
	// Never fatal: callers fall back to an empty result set.
	ErrGatewayUnavailable = New("GATEWAY_UNAVAILABLE", http.StatusBadGateway, "data gateway unavailable")
	ErrLoadFailed         = New("LOAD_FAILED", http.StatusBadGateway, "failed to load data")

	ErrCacheMiss = New("CACHE_MISS", http.StatusNotFound, "cache miss")

	// ErrFormSessionExpired covers a wizard session that was evicted or
	// never existed; the client restarts the form at step one.
	ErrFormSessionExpired = New("FORM_SESSION_EXPIRED", http.StatusNotFound, "form session not found or expired")

	// ErrStudentRatingFlow steers students off the report wizard and onto
	// the rating surface; other non-submitting roles get a plain Forbidden.
	ErrStudentRatingFlow = New("STUDENT_RATING_FLOW", http.StatusForbidden, "students rate lectures instead of filing reports")
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
