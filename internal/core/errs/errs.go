// Package errs defines the error taxonomy shared by the core, the services
// and the adapters. Callers match with errors.Is; every layer wraps with %w.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is returned for malformed arguments: a negative depth,
	// a missing required key, an unknown action.
	ErrPrecondition = errors.New("precondition violated")

	// ErrAlreadyExists is returned when a caller-supplied id is already in use.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrNotFound is returned when an operation needs a record that is absent.
	// Plain lookups report absence with a found flag instead.
	ErrNotFound = errors.New("record not found")

	// ErrMultiplicity is returned when a lookup by a unique id yields more
	// than one row.
	ErrMultiplicity = errors.New("unique id matched multiple rows")

	// ErrCycle is returned when the project parent chain loops.
	ErrCycle = errors.New("cycle in project hierarchy")

	// ErrUnsupported is returned for declared but unimplemented modes.
	ErrUnsupported = errors.New("unsupported operation")
)

// Preconditionf returns an ErrPrecondition with a formatted reason.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// NotFoundf returns an ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
