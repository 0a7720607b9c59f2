// Package response defines the error type the API domains use for their
// sentinel errors. Each sentinel carries the HTTP status it should surface
// with, so the central error translator can map service failures to
// responses without per-handler switch statements.
package response

import (
	"errors"
)

// Error pairs an HTTP status code with the underlying error. Domain
// sentinels (annotation.ErrUnknownLabel, image.ErrImageNotFound, ...) are
// all values of this type.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// NewError builds a domain sentinel with the status code it should be
// served with.
func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}
