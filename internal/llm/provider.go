// Package llm sends single-turn prompts to hosted language models. Each
// vendor SDK sits behind Provider; timeouts, retries and event logging are
// layered on as decorators by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate returns the model's text, or JSON that satisfies
	// req.Schema when one is set.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, after alias resolution.
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its native structured output. The
	// reply is validated against it before Generate returns.
	Schema *Schema

	MaxTokens int

	// Temperature is passed through when above zero; otherwise the
	// provider default applies.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema plus the name and description some vendors
// require alongside it. Name is kebab-case, e.g. "quiz-questions".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	// Content is validated JSON for schema requests and raw model text
	// otherwise.
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may be a
	// dated snapshot of ModelID.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns Content as a string. It is nil-safe.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// UserRequest builds a single-turn request.
func UserRequest(system, prompt string, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens: maxTokens,
	}
}
