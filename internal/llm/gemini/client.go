// Package gemini implements llm.Client on top of the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hirelens/internal/llm"
	"hirelens/internal/shared/telemetry"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
)

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client implements llm.Client using Gemini chat sessions.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient dials the Gemini API with an API key.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required for Gemini")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Chat replays the conversation as chat history and sends the final user turn.
func (c *Client) Chat(ctx context.Context, req llm.Request) (string, error) {
	conv, err := toConversation(req.Messages)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}
	if conv.system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(conv.system)},
		}
	}

	cs := model.StartChat()
	cs.History = conv.history
	resp, err := cs.SendMessage(ctx, genai.Text(conv.prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	logUsage(c.model, resp)

	text := responseText(resp)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

type conversation struct {
	system  string
	history []*genai.Content
	prompt  string
}

// toConversation folds system messages into one instruction and maps the
// remaining turns onto Gemini roles. The last turn must come from the user.
func toConversation(msgs []llm.Message) (conversation, error) {
	var out conversation
	var system []string
	var turns []llm.Message
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			if s := strings.TrimSpace(m.Content); s != "" {
				system = append(system, s)
			}
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != llm.RoleUser {
		return out, fmt.Errorf("gemini: conversation must end with a user message")
	}
	out.system = strings.Join(system, "\n\n")
	out.prompt = turns[len(turns)-1].Content
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		out.history = append(out.history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

func logUsage(model string, resp *genai.GenerateContentResponse) {
	fields := map[string]any{"provider": "gemini", "model": model}
	if resp != nil && resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["completion_tokens"] = resp.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	telemetry.Debug("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
