// Package apperror defines the typed errors raised by the business layer
// and their mapping to HTTP status codes. Handlers translate any other
// error into a plain 500.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Validation marks missing or malformed input.
	Validation Kind = iota
	// Conflict marks a uniqueness violation.
	Conflict
	// NotFound marks the absence of a matching record.
	NotFound
	// Auth marks bad credentials or a bad, missing or expired token.
	Auth
	// Store marks a failure of the underlying database.
	Store
)

// Error carries a kind and the message returned to the caller.
// An optional underlying error is kept for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to the HTTP status used at the handler
// boundary. Conflicts answer 400, matching the original API contract.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Auth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// From extracts an *Error from err, or wraps err as a Store error with
// the fallback message.
func From(err error, fallback string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(Store, fallback, err)
}
