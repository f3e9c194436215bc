// Package apperr defines the closed error taxonomy for the platform.
//
// Every operation failure is classified into exactly one Kind, and each
// Kind maps to a fixed HTTP status. Store and provider call sites wrap
// unexpected failures as Internal with a context string; domain errors
// (NotFound, AlreadyExists, ...) re-propagate unchanged through
// enclosing layers instead of being recast.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error.
type Kind string

const (
	Unauthorized      Kind = "unauthorized"       // missing/invalid/expired token, bad credentials
	Forbidden         Kind = "forbidden"          // deactivated account or insufficient role
	NotFound          Kind = "not_found"          // no matching record
	AlreadyExists     Kind = "already_exists"     // uniqueness violated
	AlreadyActivated  Kind = "already_activated"  // activation attempted twice
	AlreadyRegistered Kind = "already_registered" // duplicate (posting, student) registration
	InvalidArgument   Kind = "invalid_argument"   // malformed input, mismatched email, bad enum value
	InvalidState      Kind = "invalid_state"      // transition attempted from a non-pending state
	RateLimited       Kind = "rate_limited"       // too many attempts from one client
	Internal          Kind = "internal"           // store/provider unreachable or unexpected failure
)

// Error is a kinded error with a human-readable message.
type Error struct {
	Kind    Kind
	Msg     string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return e.Msg + ": " + e.Wrapped.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// E builds a kinded error with a fixed message.
func E(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Errorf builds a kinded error with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an unexpected failure as Internal, attaching a
// context message for diagnostics. If err is already kinded it is
// returned unchanged so the original classification survives enclosing
// layers.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: Internal, Msg: msg, Wrapped: err}
}

// KindOf returns the Kind of err, or Internal for unclassified errors.
// A nil error has no kind; callers should not ask.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus returns the fixed status code for a kind.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists, AlreadyActivated, AlreadyRegistered, InvalidState:
		return http.StatusConflict
	case InvalidArgument:
		return http.StatusBadRequest
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
