package resumes

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hirelens/internal/analyses"
	"hirelens/internal/extract"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/server/respond"
	"hirelens/internal/shared/util"
	"hirelens/resume/model"
)

const (
	defaultMaxUploadBytes = 2 << 20
	// multipartOverhead leaves room for boundaries and part headers on top of
	// the file limit.
	multipartOverhead = 64 << 10
)

// Handler exposes the upload endpoints.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive limit uses the 2 MiB default.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the parse-only upload route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/upload", h.upload)
}

// RegisterAnalysisRoutes attaches routes that call the model.
func (h *Handler) RegisterAnalysisRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/upload-and-analyze", h.uploadAndAnalyze)
}

type uploadAndAnalyzeResponse struct {
	Message      string                 `json:"message"`
	SessionID    string                 `json:"session_id"`
	ParsedResume model.StructuredResume `json:"parsed_resume"`
	AIAnalysis   analyses.Result        `json:"ai_analysis"`
}

func (h *Handler) upload(c *gin.Context) {
	fileName, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	parsed, err := h.Svc.Parse(c.Request.Context(), fileName, data)
	if err != nil {
		respondParseError(c, err)
		return
	}
	respond.Message(c, "Resume parsed successfully", parsed.Resume)
}

func (h *Handler) uploadAndAnalyze(c *gin.Context) {
	fileName, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	out, err := h.Svc.ParseAndAnalyze(c.Request.Context(), fileName, data)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat), errors.Is(err, extract.ErrExtraction):
			respondParseError(c, err)
		case errors.Is(err, ErrAnalysisUnavailable):
			respond.Error(c, http.StatusServiceUnavailable, analyses.ErrorCodeLLMUnavailable, "AI analysis is not configured", nil)
		default:
			analyses.RespondError(c, err)
		}
		return
	}
	c.Set(middleware.SessionIDKey, out.Session.ID)
	respond.OK(c, uploadAndAnalyzeResponse{
		Message:      "Resume uploaded & analyzed successfully",
		SessionID:    out.Session.ID,
		ParsedResume: out.Resume,
		AIAnalysis:   out.Session.Analysis,
	})
}

// readUpload pulls the multipart "file" field into memory. The body is
// parsed by FormFile first; the extension and size checks then reject an
// upload before any extraction work starts.
func (h *Handler) readUpload(c *gin.Context) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"max_bytes": h.MaxUploadBytes})
			return "", nil, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return "", nil, false
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return "", nil, false
	}
	if _, err := extract.FormatFromFileName(fileName); err != nil {
		respondParseError(c, err)
		return "", nil, false
	}
	if fileHeader.Size > h.MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"max_bytes": h.MaxUploadBytes})
		return "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return "", nil, false
	}
	return fileName, data, true
}

func respondParseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "Only PDF or DOCX allowed", nil)
	case errors.Is(err, extract.ErrExtraction):
		respond.Error(c, http.StatusBadRequest, "extraction_failed", "Could not read text from the uploaded document", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to parse resume", nil)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
