// Package apperr holds the single error type used for business-rule violations.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

// New returns a 400 error.
func New(msg string) *Error {
	return &Error{Message: msg, Status: http.StatusBadRequest}
}

func WithStatus(msg string, status int) *Error {
	return &Error{Message: msg, Status: status}
}

// As reports whether err carries an *Error anywhere in its chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
