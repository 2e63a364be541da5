package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirelens/internal/analyses"
	"hirelens/internal/sessions"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/server/respond"
)

// Handler wires the chat endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/chat", h.chat)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "request body must be a JSON object", nil)
		return
	}
	if req.SessionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "session_id is required", []map[string]string{
			{"field": "session_id", "issue": "required"},
		})
		return
	}
	c.Set(middleware.SessionIDKey, req.SessionID)

	reply, err := h.Svc.Reply(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", []map[string]string{
				{"field": "message", "issue": "empty"},
			})
		case errors.Is(err, sessions.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		default:
			analyses.RespondError(c, err)
		}
		return
	}
	respond.OK(c, chatResponse{SessionID: req.SessionID, Reply: reply})
}
