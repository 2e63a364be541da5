package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	AppName       string
	LLMProvider   string
	LLMConfigured bool
	startedAt     time.Time
	now           func() time.Time
}

// NewService constructs a new health service.
func NewService(appName, provider string, llmConfigured bool) *Service {
	return &Service{
		AppName:       appName,
		LLMProvider:   provider,
		LLMConfigured: llmConfigured,
		startedAt:     time.Now(),
		now:           time.Now,
	}
}

// Status returns the liveness payload. The process is healthy even when no
// model is configured since parsing works without one.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":             true,
		"app":            s.AppName,
		"llm_provider":   s.LLMProvider,
		"llm_configured": s.LLMConfigured,
		"uptime_seconds": int64(s.now().Sub(s.startedAt).Seconds()),
	}
}
