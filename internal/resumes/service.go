package resumes

import (
	"context"
	"errors"
	"fmt"

	"hirelens/internal/analyses"
	"hirelens/internal/extract"
	"hirelens/internal/sessions"
	"hirelens/internal/shared/metrics"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/telemetry"
	"hirelens/resume/model"
	"hirelens/resume/parser"
)

// ErrAnalysisUnavailable is returned when analysis is requested without an
// analysis pipeline wired in.
var ErrAnalysisUnavailable = errors.New("analysis pipeline not configured")

// Parsed is the outcome of turning an upload into a structured resume.
type Parsed struct {
	Format extract.Format
	Text   string
	Resume model.StructuredResume
}

// Analyzed extends Parsed with the AI assessment and the session opened for it.
type Analyzed struct {
	Parsed
	Session sessions.Session
}

// Service runs uploads through extraction, parsing and optionally analysis.
type Service struct {
	Policy   parser.Policy
	Analyses *analyses.Service
	Sessions *sessions.Service
}

// NewService constructs a Service with the default parsing policy.
func NewService(analysisSvc *analyses.Service, sessionSvc *sessions.Service) *Service {
	return &Service{
		Policy:   parser.DefaultPolicy(),
		Analyses: analysisSvc,
		Sessions: sessionSvc,
	}
}

// Parse extracts text from an uploaded document and structures it.
func (s *Service) Parse(ctx context.Context, fileName string, data []byte) (Parsed, error) {
	format, err := extract.FormatFromFileName(fileName)
	if err != nil {
		return Parsed{}, err
	}
	text, err := extract.ExtractText(ctx, extract.RawDocument{Format: format, Data: data})
	if err != nil {
		if errors.Is(err, extract.ErrExtraction) {
			metrics.IncExtractionFailures()
		}
		telemetry.Warn("resume.extract.failed", map[string]any{
			"request_id": middleware.RequestIDFrom(ctx),
			"format":     string(format),
			"size_bytes": len(data),
			"error":      err.Error(),
		})
		return Parsed{}, err
	}

	resume := s.Policy.ParseText(text)
	metrics.IncResumesParsed()
	telemetry.Info("resume.parsed", map[string]any{
		"request_id": middleware.RequestIDFrom(ctx),
		"format":     string(format),
		"size_bytes": len(data),
		"skills":     len(resume.Skills),
		"experience": len(resume.Experience),
		"education":  len(resume.Education),
		"projects":   len(resume.Projects),
	})
	return Parsed{Format: format, Text: text, Resume: resume}, nil
}

// ParseAndAnalyze parses the upload, analyzes its raw text and opens a chat
// session for the result.
func (s *Service) ParseAndAnalyze(ctx context.Context, fileName string, data []byte) (Analyzed, error) {
	if s.Analyses == nil || s.Sessions == nil {
		return Analyzed{}, ErrAnalysisUnavailable
	}
	parsed, err := s.Parse(ctx, fileName, data)
	if err != nil {
		return Analyzed{}, err
	}
	result, err := s.Analyses.Analyze(ctx, parsed.Text)
	if err != nil {
		return Analyzed{}, err
	}
	sess, err := s.Sessions.Create(ctx, result)
	if err != nil {
		return Analyzed{}, fmt.Errorf("create session: %w", err)
	}
	return Analyzed{Parsed: parsed, Session: sess}, nil
}
