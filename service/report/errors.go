package report

import "errors"

var (
	// ErrMaterializationFailed means the report could not be persisted.
	// Retryable: a later turn re-evaluates the trigger, and the flag/counter
	// pair is left untouched.
	ErrMaterializationFailed = errors.New("failed to materialize diagnosis report")

	// ErrValidation marks a malformed survey submission.
	ErrValidation = errors.New("invalid survey submission")
)
