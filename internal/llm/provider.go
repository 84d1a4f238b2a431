package llm

import (
	"context"
	"encoding/json"
)

// Provider generates model output for a single request.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is one prompt sent to a provider.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means plain text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON a request expects back.
type Schema struct {
	// Name doubles as the cache key for the compiled validator and as the
	// schema name sent to OpenAI.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the output of a successful Generate call.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
