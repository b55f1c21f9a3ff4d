// Package errkind defines the error kinds surfaced by code generation.
// Errors are created with github.com/cockroachdb/errors and marked with one of
// the sentinels below so callers can classify them with errors.Is.
package errkind

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidName marks a path containing a reserved device name or an
	// invalid filename character. Fails only the file being generated.
	ErrInvalidName = errors.New("invalid name")

	// ErrAmbiguousSelection marks a destination whose project context cannot
	// be determined. Aborts the whole batch before dispatch.
	ErrAmbiguousSelection = errors.New("ambiguous source selection")

	// ErrEntityNotFound marks a requested entity missing from the
	// introspected classes.
	ErrEntityNotFound = errors.New("entity not found")
)

// InvalidName returns an ErrInvalidName-marked error.
func InvalidName(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidName)
}

// AmbiguousSelection returns an ErrAmbiguousSelection-marked error with a
// user-facing hint.
func AmbiguousSelection(hint, format string, args ...any) error {
	err := errors.Mark(errors.Newf(format, args...), ErrAmbiguousSelection)
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return err
}

// EntityNotFound returns an ErrEntityNotFound-marked error.
func EntityNotFound(name string) error {
	return errors.Mark(errors.Newf("entity %q not found", name), ErrEntityNotFound)
}
