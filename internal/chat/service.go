package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hirelens/internal/analyses"
	"hirelens/internal/llm"
	"hirelens/internal/sessions"
	"hirelens/internal/shared/metrics"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/telemetry"
)

const defaultTemperature = 0.4

// ErrEmptyMessage is returned when the user sends nothing to answer.
var ErrEmptyMessage = errors.New("message is empty")

// Service answers follow-up questions about a stored analysis.
type Service struct {
	Sessions    sessions.Store
	LLM         llm.Client
	Temperature float32
	RetryDelay  time.Duration
}

// NewService constructs a Service with the advisor's default temperature.
func NewService(store sessions.Store, client llm.Client) *Service {
	return &Service{Sessions: store, LLM: client, Temperature: defaultTemperature}
}

// Reply answers message in the context of the session's analysis and
// history, then records both turns.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s.LLM == nil {
		return "", llm.ErrNotConfigured
	}

	requestID := middleware.RequestIDFrom(ctx)
	client := analyses.NewRetryingLLM(s.LLM, requestID, s.RetryDelay)
	reply, err := client.Chat(ctx, llm.Request{
		Messages:    BuildMessages(sess, message),
		Temperature: s.Temperature,
	})
	if err != nil {
		metrics.IncChatFailures()
		return "", fmt.Errorf("llm chat: %w", err)
	}
	reply = strings.TrimSpace(reply)

	if err := s.Sessions.AppendChat(ctx, sessionID, llm.User(message), llm.Assistant(reply)); err != nil {
		return "", err
	}
	metrics.IncChatReplies()
	telemetry.Info("chat.reply", map[string]any{
		"request_id":    requestID,
		"session_id":    sessionID,
		"history_turns": len(sess.ChatHistory),
	})
	return reply, nil
}

// BuildMessages lays out the advisor prompt, prior turns, then the new question.
func BuildMessages(sess sessions.Session, message string) []llm.Message {
	a := sess.Analysis
	system := llm.ChatSystemPrompt{
		Summary:         a.Summary,
		Strengths:       a.Strengths,
		Weaknesses:      a.Weaknesses,
		ImprovementTips: a.ImprovementTips,
		SuggestedRoles:  a.SuggestedRoles,
		ATSScore:        a.ATSScore,
	}.Render()

	msgs := make([]llm.Message, 0, len(sess.ChatHistory)+2)
	msgs = append(msgs, llm.System(system))
	msgs = append(msgs, sess.ChatHistory...)
	msgs = append(msgs, llm.User(message))
	return msgs
}
