package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/tubequiz/internal/apperr"
)

// Provider errors. Every vendor maps its SDK errors onto these so retry
// policy and user messages do not depend on the vendor.

// ErrRateLimit is HTTP 429. RetryAfter is the server's hint, zero if none.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply broke its contract: blank text, or
// JSON that fails the request schema. Content holds the reply.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return "invalid LLM response: " + e.Err.Error() }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx replies and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return "LLM provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected is any other 4xx: a bad key, an unknown model, a
// schema the vendor does not accept.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a structured reply cut off at MaxTokens. Content
// is the partial JSON.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrContentBlocked is a refusal or a safety filter hit on the prompt or
// the reply.
type ErrContentBlocked struct {
	Reason string
}

func (e *ErrContentBlocked) Error() string { return "LLM response blocked: " + e.Reason }

var errEmptyText = errors.New("empty text response")

func checkText(content json.RawMessage) error {
	if strings.TrimSpace(string(content)) == "" {
		return &ErrInvalidResponse{Content: content, Err: errEmptyText}
	}
	return nil
}

// Unavailable classifies a provider failure as apperr.ErrUnavailable for
// the layers above llm. Cancellation is returned unchanged.
func Unavailable(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrUnavailable), errors.Is(err, context.Canceled):
		return err
	}
	return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
}
