package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the request-level error taxonomy. Handlers map these
// to HTTP status codes; services wrap them with context via fmt.Errorf + %w.
var (
	// ErrUnauthenticated indicates a missing or invalid bearer credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers both "does not exist" and "exists but private".
	// The two cases are deliberately indistinguishable to callers so the
	// public API does not leak which users exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")

	// ErrAggregation indicates an aggregation invariant violation — a
	// data-model bug rather than an expected runtime condition.
	ErrAggregation = errors.New("aggregation invariant violated")
)

// ValidationError builds an ErrValidation with a field-level message.
func ValidationError(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, msg)
}
