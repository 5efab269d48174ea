// Package apperror defines the typed errors the API produces and their HTTP
// status mapping. Repositories and services return these; controllers only
// translate them into the response envelope.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// Internal is an unexpected storage or server fault.
	Internal Kind = iota
	// Validation is a missing or malformed request field.
	Validation
	// DuplicateEmail is a signup or settings change colliding with an existing account.
	DuplicateEmail
	// Auth covers bad credentials and missing/invalid/expired tokens alike.
	Auth
	// NotFound is an empty result where the contract promises a row.
	NotFound
	// Timeout is a store call exceeding its deadline.
	Timeout
)

// Error is the application error type carrying a kind, a user-facing message
// and an optional wrapped cause. The cause is for logs only and never reaches
// the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status. DuplicateEmail maps to
// 400 rather than 409 because existing clients key off the original contract.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, DuplicateEmail:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

func NewValidation(message string) *Error {
	return New(Validation, message, nil)
}

func NewDuplicateEmail(message string) *Error {
	return New(DuplicateEmail, message, nil)
}

func NewAuth(message string) *Error {
	return New(Auth, message, nil)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message, nil)
}

func NewTimeout(message string, err error) *Error {
	return New(Timeout, message, err)
}

// From extracts the *Error from an error chain, or wraps unknown errors as
// Internal so controllers always have a status to answer with.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("internal server error", err)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
