package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotConfigured is returned when no provider key is available.
var ErrNotConfigured = errors.New("no generative AI provider configured")

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// InvalidKind distinguishes why a response was rejected.
type InvalidKind int

const (
	// InvalidJSON means the content did not parse as JSON.
	InvalidJSON InvalidKind = iota

	// SchemaMismatch means the content parsed but did not satisfy the
	// schema or a domain check on the decoded value.
	SchemaMismatch

	// EmptyContent means the provider returned no usable content at all.
	EmptyContent
)

func (k InvalidKind) String() string {
	switch k {
	case InvalidJSON:
		return "invalid_json"
	case SchemaMismatch:
		return "schema_mismatch"
	case EmptyContent:
		return "empty_content"
	default:
		return "unknown"
	}
}

// ErrInvalidResponse indicates the model returned content that cannot be
// used: unparseable JSON, a schema violation, or nothing at all.
type ErrInvalidResponse struct {
	Kind    InvalidKind
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response (%s): %v", e.Kind, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

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

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrContentBlocked means a safety filter refused the prompt or withheld
// the reply. Retrying the same request does not help.
type ErrContentBlocked struct {
	Reason string
}

func (e *ErrContentBlocked) Error() string {
	return "LLM content blocked: " + e.Reason
}

// Outcome classifies err into a short label for metrics and event logs.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var inv *ErrInvalidResponse
	var rl *ErrRateLimit
	var un *ErrProviderUnavailable
	var mt *ErrMaxTokensExceeded
	var cb *ErrContentBlocked
	switch {
	case errors.As(err, &inv):
		return inv.Kind.String()
	case errors.As(err, &rl):
		return "rate_limited"
	case errors.As(err, &un):
		return "unavailable"
	case errors.As(err, &mt):
		return "max_tokens"
	case errors.As(err, &cb):
		return "blocked"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}
