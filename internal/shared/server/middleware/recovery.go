package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"hirelens/internal/shared/server/respond"
	"hirelens/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. Uploaded bytes are
// never logged, only the route and session.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      rec,
				"stack":      string(debug.Stack()),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"route":      c.FullPath(),
			}
			if sid := c.GetString(SessionIDKey); sid != "" {
				fields["session_id"] = sid
			}
			telemetry.Error("request.panic", fields)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			c.Abort()
		}()
		c.Next()
	}
}
