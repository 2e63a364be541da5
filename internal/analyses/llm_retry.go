package analyses

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"hirelens/internal/llm"
	"hirelens/internal/shared/telemetry"
)

const llmRetryBaseDelay = 300 * time.Millisecond

// retryingLLM retries a transient provider failure once.
type retryingLLM struct {
	base      llm.Client
	requestID string
	delay     time.Duration
}

// NewRetryingLLM wraps base so timeouts, 5xx answers and dropped connections
// get one more attempt after delay.
func NewRetryingLLM(base llm.Client, requestID string, delay time.Duration) llm.Client {
	if base == nil {
		return nil
	}
	if delay <= 0 {
		delay = llmRetryBaseDelay
	}
	return retryingLLM{
		base:      base,
		requestID: requestID,
		delay:     delay,
	}
}

func (r retryingLLM) Chat(ctx context.Context, req llm.Request) (string, error) {
	resp, err := r.base.Chat(ctx, req)
	if err == nil || !shouldRetryLLM(err) {
		return resp, err
	}

	telemetry.Warn("llm.retry", map[string]any{
		"request_id": r.requestID,
		"attempt":    1,
		"error":      sanitizeError(err),
	})
	select {
	case <-time.After(r.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return r.base.Chat(ctx, req)
}

func shouldRetryLLM(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, llm.ErrNotConfigured) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "error 500") || strings.Contains(msg, "error 503") || strings.Contains(msg, "unavailable") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "openai") || strings.Contains(msg, "gemini") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
