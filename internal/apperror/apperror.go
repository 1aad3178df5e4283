// Package apperror defines the application's error taxonomy.
//
// Every failure that crosses a package boundary is classified against one of
// the sentinel errors below, so callers can branch with errors.Is without
// string matching. AppError carries the human-readable message (and the
// offending field for validation failures) alongside the sentinel.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")

	// ErrSessionExpired marks a 401 from the API. It is a distinct kind
	// rather than a side effect buried in the HTTP layer: the session store
	// is the only component allowed to react to it by clearing the persisted
	// credential.
	ErrSessionExpired = errors.New("session expired")

	// ErrAPI covers remaining 4xx/5xx responses and transport failures
	// (timeouts, refused connections). Callers surface these as a
	// notification with the server's message when one was decodable.
	ErrAPI = errors.New("api request failed")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// SessionExpired returns the error produced for any 401 response.
func SessionExpired() *AppError {
	return &AppError{
		Err:     ErrSessionExpired,
		Message: "session expired, please log in again",
	}
}

// API wraps a server-reported or transport-level failure. message may come
// straight from the response body's error envelope.
func API(message string) *AppError {
	return &AppError{
		Err:     ErrAPI,
		Message: message,
	}
}

// Message extracts the human-readable message from err, falling back to
// fallback when err carries no AppError. This mirrors how the UI picks
// between a server-provided string and a fixed per-operation default.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
