// Package apperr defines the error taxonomy shared by services and handlers.
// Services wrap a sentinel with context via %w; handlers translate the chain
// into an HTTP status exactly once at the request boundary.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized marks requests that require a caller identity but have none.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks cross-user access to an owned resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks lookups that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations (duplicate track or favorite).
	ErrConflict = errors.New("conflict")
	// ErrUpstream marks failures of the external search provider.
	ErrUpstream = errors.New("upstream error")
)

// Status maps an error chain to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible message for an error chain. Errors outside
// the taxonomy (storage or connection failures) are reduced to a generic
// message so driver internals never reach the client; upstream provider
// messages pass through as the search contract requires.
func Message(err error) string {
	if expected(err) {
		return err.Error()
	}
	return "internal server error"
}

func expected(err error) bool {
	for _, sentinel := range []error{ErrValidation, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict, ErrUpstream} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
