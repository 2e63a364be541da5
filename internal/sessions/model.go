package sessions

import (
	"time"

	"hirelens/internal/analyses"
	"hirelens/internal/llm"
)

// Session ties an analysis to the follow-up conversation about it.
type Session struct {
	ID          string          `json:"session_id"`
	Analysis    analyses.Result `json:"analysis"`
	ChatHistory []llm.Message   `json:"chat_history"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (s Session) clone() Session {
	out := s
	out.Analysis = s.Analysis.Clone()
	out.ChatHistory = make([]llm.Message, len(s.ChatHistory))
	copy(out.ChatHistory, s.ChatHistory)
	return out
}
