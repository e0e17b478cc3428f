package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrSchemaViolation indicates the model returned content that does not
// conform to the requested schema, or that fails a semantic check layered
// on top of it.
type ErrSchemaViolation struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ErrSchemaViolation) Error() string {
	if e.Schema != "" {
		return fmt.Sprintf("response violates schema %q: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("response violates schema: %v", e.Err)
}

func (e *ErrSchemaViolation) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrCommunication is the adapter-level failure reported to the engine.
// Op names the exchange that was attempted, e.g. "open" or "send".
type ErrCommunication struct {
	Op  string
	Err error
}

func (e *ErrCommunication) Error() string {
	return fmt.Sprintf("%s: communication failure: %v", e.Op, e.Err)
}

func (e *ErrCommunication) Unwrap() error { return e.Err }
