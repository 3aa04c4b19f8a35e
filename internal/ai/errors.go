package ai

import "errors"

// Error kinds callers branch on. Everything else coming out of this
// package is a wrapped transport or provider failure.
var (
	// ErrMissingAPIKey means no provider credential is configured. It is
	// returned before any network I/O is attempted.
	ErrMissingAPIKey = errors.New("anthropic API key is not configured")

	// ErrMalformedResponse means the provider answered, but the reply
	// could not be parsed into the expected JSON shape. Distinct from a
	// failed request so callers can message the two differently.
	ErrMalformedResponse = errors.New("malformed model response")
)
