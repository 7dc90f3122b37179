package shm

import (
	"errors"
	"fmt"
)

// Domain errors for parameter handling and animation lifecycle.
var (
	// ErrMalformedInput indicates text that does not parse as a real number.
	ErrMalformedInput = errors.New("shm: input is not a number")

	// ErrUnknownParam indicates a parameter name outside amplitude, omega, phase.
	ErrUnknownParam = errors.New("shm: unknown parameter")

	// ErrDriverStopped indicates a driver that was already torn down.
	ErrDriverStopped = errors.New("shm: driver stopped")
)

// InputError wraps a rejected input with the parameter it was meant for.
type InputError struct {
	Param   string
	Raw     string
	Wrapped error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Param, e.Raw, e.Wrapped)
}

func (e *InputError) Unwrap() error {
	return e.Wrapped
}
