package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hirelens/internal/shared/telemetry"
)

// SessionIDKey is the gin context key handlers set once a request is tied to
// an analysis session.
const SessionIDKey = "sessionId"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"session_id":  c.GetString(SessionIDKey),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if size := c.Request.ContentLength; size > 0 {
			fields["request_bytes"] = size
		}
		telemetry.Info("request.complete", fields)
	}
}
