// Package apperr defines the two error kinds the HTTP layer can relay
// to clients. InputError is a caller-correctable precondition failure,
// AccessError a credential failure. Anything else is treated as an
// internal error and must not leak its message.
package apperr

import (
	"errors"
	"fmt"
)

type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// Input builds an InputError with a formatted message.
func Input(format string, args ...interface{}) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

type AccessError struct {
	msg string
}

func (e *AccessError) Error() string { return e.msg }

// Access builds an AccessError with a formatted message.
func Access(format string, args ...interface{}) error {
	return &AccessError{msg: fmt.Sprintf(format, args...)}
}

func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func IsAccess(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}
