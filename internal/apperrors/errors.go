// Package apperrors defines the error taxonomy shared by services and mapped
// to HTTP status codes at the handler boundary.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation      // missing/invalid field -> 400
	KindNotFound        // no matching document -> 404
	KindForbidden       // ownership/role mismatch -> 403
	KindConflict        // duplicate email/transaction/application -> 409
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation returns a 400-class error.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound returns a 404-class error.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// Forbidden returns a 403-class error.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// Conflict returns a 409-class error.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error to the status code the handler should respond
// with. Unclassified errors are treated as upstream failures.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		case KindForbidden:
			return http.StatusForbidden
		case KindConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
