// Package apperrors defines the error taxonomy shared by every layer.
// Each error carries an explicit Kind; the HTTP status mapping lives in
// one place, the error-handler middleware.
package apperrors

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidCredentials
	KindInvalidToken
	KindExpiredToken
	KindAccountDeactivated
	KindForbidden
	KindNotFound
	KindDuplicateEmail
	KindSelfAction
)

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

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// As extracts an *Error from an error chain; unknown errors come back as
// a KindInternal wrapper so the mapper has exactly one shape to handle.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// Status returns the HTTP status code for a kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindSelfAction:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials, KindInvalidToken, KindExpiredToken:
		return http.StatusUnauthorized
	case KindAccountDeactivated, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateEmail:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Label is the machine-readable error name included in response bodies.
func (k Kind) Label() string {
	switch k {
	case KindValidation:
		return "Validation error"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindInvalidCredentials:
		return "Invalid credentials"
	case KindInvalidToken:
		return "Invalid token"
	case KindExpiredToken:
		return "Token expired"
	case KindAccountDeactivated:
		return "Account deactivated"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "Not found"
	case KindDuplicateEmail:
		return "Duplicate entry"
	case KindSelfAction:
		return "Invalid operation"
	default:
		return "Internal error"
	}
}
