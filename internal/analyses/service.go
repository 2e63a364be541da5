package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hirelens/internal/llm"
	"hirelens/internal/shared/metrics"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/telemetry"
)

const (
	defaultTemperature  = 0.3
	analyzeSystemPrompt = "You are a resume analysis engine. Respond with JSON only. Output must match the schema exactly."
)

// Service runs the two-step analysis pipeline: a prose summary first, then a
// structured assessment that builds on it.
type Service struct {
	LLM         llm.Client
	Temperature float32
	// RetryDelay is the pause before retrying a transient provider failure.
	RetryDelay time.Duration
}

// NewService constructs a Service with default sampling settings.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client, Temperature: defaultTemperature}
}

// Analyze summarizes and assesses resumeText.
func (s *Service) Analyze(ctx context.Context, resumeText string) (Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return Result{}, ErrEmptyResume
	}
	if s.LLM == nil {
		return Result{}, llm.ErrNotConfigured
	}

	requestID := middleware.RequestIDFrom(ctx)
	startedAt := time.Now()
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  requestID,
		"status":      "processing",
		"resume_size": len(resumeText),
	})

	result, err := s.run(ctx, NewRetryingLLM(s.LLM, requestID, s.RetryDelay), resumeText)
	elapsed := float64(time.Since(startedAt).Microseconds()) / 1000.0
	metrics.ObserveAnalysisDurationMs(elapsed)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.status", map[string]any{
			"request_id":  requestID,
			"status":      "failed",
			"error":       sanitizeError(err),
			"duration_ms": elapsed,
		})
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  requestID,
		"status":      "completed",
		"ats_score":   result.ATSScore,
		"duration_ms": elapsed,
	})
	return result, nil
}

func (s *Service) run(ctx context.Context, client llm.Client, resumeText string) (Result, error) {
	summary, err := client.Chat(ctx, llm.Request{
		Messages:    []llm.Message{llm.User(llm.SummarizePrompt(resumeText))},
		Temperature: s.Temperature,
	})
	if err != nil {
		return Result{}, fmt.Errorf("llm summarize: %w", err)
	}
	summary = strings.TrimSpace(summary)

	raw, err := client.Chat(ctx, llm.Request{
		Messages: []llm.Message{
			llm.System(analyzeSystemPrompt),
			llm.User(llm.AnalyzePrompt(resumeText, summary)),
		},
		Temperature: s.Temperature,
		JSON:        true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("llm analyze: %w", err)
	}

	payload, parseErr := parseAnalysis(raw)
	if parseErr != nil {
		telemetry.Warn("analysis.fix_json", map[string]any{
			"request_id": middleware.RequestIDFrom(ctx),
			"error":      sanitizeError(parseErr),
		})
		fixed, err := client.Chat(ctx, llm.Request{
			Messages: []llm.Message{llm.User(llm.FixJSONPrompt(raw))},
			JSON:     true,
		})
		if err != nil {
			return Result{}, fmt.Errorf("llm analyze retry: %w", err)
		}
		payload, parseErr = parseAnalysis(fixed)
		if parseErr != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, parseErr)
		}
	}

	return Result{
		Summary:         summary,
		Strengths:       nonNil(payload.Strengths),
		Weaknesses:      nonNil(payload.Weaknesses),
		ImprovementTips: nonNil(payload.ImprovementTips),
		SuggestedRoles:  nonNil(payload.SuggestedRoles),
		ATSScore:        clampScore(*payload.ATSScore),
	}, nil
}

func parseAnalysis(raw string) (analysisPayload, error) {
	var payload analysisPayload
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return payload, errors.New("empty output")
	}
	dec := json.NewDecoder(strings.NewReader(cleaned))
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("decode analysis: %w", err)
	}
	if payload.ATSScore == nil {
		return payload, errors.New("ats_score missing")
	}
	return payload, nil
}

// cleanJSON strips markdown fences and any prose around the outermost object.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return minATSScore
	}
	score := int(math.Round(v))
	if score < minATSScore {
		return minATSScore
	}
	if score > maxATSScore {
		return maxATSScore
	}
	return score
}

func nonNil(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
