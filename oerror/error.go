package oerror

import (
	"errors"
	"fmt"
)

// ErrNonFinite is wrapped by errors describing NaN or infinite configuration values.
var ErrNonFinite = errors.New("non-finite value")

// Error is a contract violation raised by the simulation core.
type Error struct {
	Err   string
	Cause error
}

// New returns a new Error with the formatted message.
func New(format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...)}
}

// Wrap returns a new Error describing cause. The message is prefixed to the cause's own.
func Wrap(cause error, format string, args ...any) *Error {
	return &Error{Err: fmt.Sprintf(format, args...) + ": " + cause.Error(), Cause: cause}
}

func (e *Error) Error() string {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.Cause
}
