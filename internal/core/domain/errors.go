package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDescriptor indicates a malformed table descriptor.
	// Configuration carrying such a descriptor is rejected as a whole.
	ErrInvalidDescriptor = errors.New("invalid table descriptor")

	// ErrNotConfigured indicates a service was used before its collaborators were set.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnsupportedBackend indicates an unknown record store or recent-cache backend.
	ErrUnsupportedBackend = errors.New("unsupported backend")
)

// UnresolvedPlaceholderError reports a reference template placeholder
// that a record could not satisfy.
type UnresolvedPlaceholderError struct {
	Field string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return "reference placeholder :" + e.Field + " has no value in record"
}
