package sessions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/server/respond"
)

// Handler exposes stored sessions over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/sessions/:id", h.getSession)
}

func (h *Handler) getSession(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SessionIDKey, id)

	sess, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, ErrMissingID):
			respond.Error(c, http.StatusBadRequest, "validation_error", "session id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load session", nil)
		}
		return
	}
	respond.OK(c, sess)
}
