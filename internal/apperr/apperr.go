// Package apperr defines the domain error vocabulary. Every business
// rule violation maps to one of these errors; the transport layer
// translates the code and status, nothing else interprets them.
package apperr

import (
	"fmt"
	"net/http"
)

// Error is a domain error carrying a stable code and the HTTP status
// the transport layer should respond with.
type Error struct {
	// Code is the stable machine-readable error code
	Code string

	// Status is the HTTP status the transport maps this error to
	Status int

	// Message is the human-readable description
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is matches errors by code, so wrapped and messagef-derived errors
// still compare equal to their sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

// WithMessagef returns a copy of the error with a formatted message
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return &Error{
		Code:    e.Code,
		Status:  e.Status,
		Message: fmt.Sprintf(format, args...),
	}
}

// Sentinel domain errors
var (
	// InvalidStateTransition is returned when a session status change
	// is requested from an illegal source state
	InvalidStateTransition = &Error{
		Code:    "INVALID_STATE_TRANSITION",
		Status:  http.StatusBadRequest,
		Message: "invalid session state transition",
	}

	// SessionReadonly is returned when a mutation targets a DONE session
	SessionReadonly = &Error{
		Code:    "SESSION_READONLY",
		Status:  http.StatusBadRequest,
		Message: "session is done and read-only",
	}

	// SessionLocked is returned when a team change is attempted while
	// attachments exist and the admin has not unlocked the session
	SessionLocked = &Error{
		Code:    "SESSION_LOCKED",
		Status:  http.StatusBadRequest,
		Message: "session structure is locked by attached photos",
	}

	// ConfirmedMatchUndeletable is returned when deleting a confirmed match
	ConfirmedMatchUndeletable = &Error{
		Code:    "CONFIRMED_MATCH_UNDELETABLE",
		Status:  http.StatusBadRequest,
		Message: "confirmed matches cannot be deleted",
	}

	// NotFound is returned when an aggregate id does not resolve
	NotFound = &Error{
		Code:    "NOT_FOUND",
		Status:  http.StatusNotFound,
		Message: "resource not found",
	}

	// Conflict is returned when a concurrent structure change holds
	// the session lock
	Conflict = &Error{
		Code:    "CONFLICT",
		Status:  http.StatusConflict,
		Message: "conflicting state",
	}

	// Unauthorized is returned on token mismatch
	Unauthorized = &Error{
		Code:    "UNAUTHORIZED",
		Status:  http.StatusUnauthorized,
		Message: "invalid session token",
	}
)
