package errors

import (
	"errors"
	"fmt"
)

// Error carries a human-readable message alongside the underlying cause.
// It is the wrapper used at outbound boundaries where the raw error is
// too low level to surface on its own.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error carrying only a message.
func New(message string) error {
	return &Error{Message: message}
}

// Wrap annotates err with a message. A nil err yields nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Message: message, Err: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }
