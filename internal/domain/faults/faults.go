// Package faults defines the error taxonomy shared by the application layer:
// validation failures (resolved before any write, surfaced inline), not-found
// lookups (a distinct user message), and everything else (store or internal
// failures, logged and surfaced as a generic banner).
package faults

import "errors"

// ValidationError reports malformed or missing input. It is always caught
// before any write occurs.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a lookup that matched zero rows.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// Validation creates a ValidationError with the given user-facing message.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

// NotFound creates a NotFoundError with the given user-facing message.
func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
