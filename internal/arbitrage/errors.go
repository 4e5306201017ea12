package arbitrage

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the error kind for inputs rejected before any calculation runs.
var ErrInvalidInput = errors.New("invalid calculator input")

// InputError describes which input was rejected and why.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match any InputError.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// AsInputError attempts to unwrap an error into an InputError.
func AsInputError(err error) (*InputError, bool) {
	var inErr *InputError
	if errors.As(err, &inErr) {
		return inErr, true
	}
	return nil, false
}
