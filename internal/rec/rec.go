// Package rec turns recovered panics into errors.
package rec

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrPanic is wrapped by every error built from a recovered panic.
var ErrPanic = errors.New("recovered panic")

// toError formats a recovered value. recover only stops a panic when called
// directly by the deferred function, so Error and Wrap call it themselves.
func toError(r any) error {
	switch t := r.(type) {
	case error:
		return fmt.Errorf("%w: %w\n%s", ErrPanic, t, debug.Stack())
	default:
		return fmt.Errorf("%w: %v\n%s", ErrPanic, r, debug.Stack())
	}
}

// Error recovers a panic and assigns it to the provided error.
// It must be deferred directly.
func Error(err *error) {
	if r := recover(); r != nil {
		*err = toError(r)
	}
}

// Wrap recovers a panic with the provided format and arguments
// and assigns it to the provided error.
// The recovered panic is appended to the end of the arguments.
// If no panic was recovered, but the error is not nil, it is wrapped
// with the provided format and arguments as well.
func Wrap(err *error, format string, a ...any) {
	if r := recover(); r != nil {
		*err = fmt.Errorf(format, append(a, toError(r))...)
	} else if *err != nil {
		*err = fmt.Errorf(format, append(a, *err)...)
	}
}
