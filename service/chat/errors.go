package chat

import "errors"

var (
	// ErrSessionNotFound is returned when the session id does not exist or
	// belongs to another user.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrSessionClosed is returned for any turn operation against a closed
	// session. Callers are expected to start a fresh session and retry once.
	ErrSessionClosed = errors.New("chat session is closed")

	// ErrAdapterTimeout is returned after the dialogue model call timed out
	// even with the single automatic retry. Retryable by the end user.
	ErrAdapterTimeout = errors.New("dialogue model timed out")

	// ErrAdapterMalformed marks output that could not be normalized into
	// the structured payload. Recovered internally with a fallback
	// narrative and never surfaced to clients.
	ErrAdapterMalformed = errors.New("dialogue model returned malformed output")
)
