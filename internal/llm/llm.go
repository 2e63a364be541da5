package llm

import (
	"context"
	"errors"
)

// Chat roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call.
type Request struct {
	Messages    []Message
	Temperature float32
	// JSON asks the provider for a JSON object response.
	JSON bool
}

// Client abstracts LLM providers.
type Client interface {
	Chat(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("llm provider not configured")

// ErrEmptyResponse is returned when a provider answers with no content.
var ErrEmptyResponse = errors.New("llm returned empty content")

// PlaceholderClient stands in when no API key is set so parsing-only routes keep working.
type PlaceholderClient struct{}

// Chat returns ErrNotConfigured.
func (PlaceholderClient) Chat(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

// System builds a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User builds a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant builds an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }
