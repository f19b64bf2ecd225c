// Package ierrors provides a thin wrapper around github.com/cockroachdb/errors.
// Every error created or wrapped through this package carries a stack trace that is printed with the "%+v" verb.
//
//nolint:goerr113
package ierrors

import (
	"github.com/cockroachdb/errors"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
// The %w verb wraps the referenced error.
func Errorf(format string, args ...any) error {
	return errors.Errorf(format, args...)
}

// Wrap annotates an error with a message. Wrap returns nil if err is nil.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates an error with a message format specifier and arguments. Wrapf returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Chain chains multiple errors into a single error by wrapping them as secondary causes of the first non-nil error.
// Chain returns nil if every value in errs is nil.
func Chain(errs ...error) error {
	var result error
	for _, err := range errs {
		if err == nil {
			continue
		}

		if result == nil {
			result = err

			continue
		}

		result = errors.WithSecondaryError(result, err)
	}

	return result
}
