package analyses

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirelens/internal/llm"
	"hirelens/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/analyze", h.analyze)
}

type analyzeRequest struct {
	ResumeText *string `json:"resume_text"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "request body must be a JSON object", nil)
		return
	}
	if req.ResumeText == nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resume_text key is required", []map[string]string{
			{"field": "resume_text", "issue": "required"},
		})
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), *req.ResumeText)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.OK(c, result)
}

// RespondError maps analysis and provider failures onto the error envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyResume):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "resume text is empty", []map[string]string{
			{"field": "resume_text", "issue": "empty"},
		})
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeLLMUnavailable, "AI analysis is not configured", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, ErrorCodeLLMTimeout, "AI provider timed out", nil)
	case errors.Is(err, ErrSchemaMismatch):
		respond.Error(c, http.StatusBadGateway, ErrorCodeSchemaMismatch, "AI provider returned an unreadable analysis", nil)
	default:
		respond.Error(c, http.StatusBadGateway, ErrorCodeLLM, "AI provider request failed", nil)
	}
}
