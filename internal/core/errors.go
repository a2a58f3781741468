package core

import "errors"

// Error kinds for the request-handling taxonomy. Handlers translate these
// into HTTP responses in one place; everything else wraps them with %w.
var (
	// ErrValidation marks malformed or missing client input.
	ErrValidation = errors.New("validation failed")
	// ErrClassification marks a failure of the external sentiment classifier.
	ErrClassification = errors.New("classification failed")
	// ErrStorage marks an unreachable store or missing schema.
	ErrStorage = errors.New("storage failed")
	// ErrMalformedQuery marks an unparseable request body.
	ErrMalformedQuery = errors.New("malformed request")
)
