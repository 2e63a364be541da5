package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirelens/internal/analyses"
	"hirelens/internal/chat"
	"hirelens/internal/resumes"
	"hirelens/internal/services/health"
	"hirelens/internal/sessions"
	"hirelens/internal/shared/config"
	"hirelens/internal/shared/metrics"
	"hirelens/internal/shared/server/middleware"
	"hirelens/internal/shared/server/respond"
)

const (
	rateLimitGroupDefault = "DEFAULT"
	rateLimitGroupLLM     = "LLM"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	ResumeHandler   *resumes.Handler
	AnalysisHandler *analyses.Handler
	SessionHandler  *sessions.Handler
	ChatHandler     *chat.Handler
	// Limiter is shared across requests; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// llmRoutes are the routes that call the model and get the stricter limit.
var llmRoutes = map[string]struct{}{
	"/api/v1/resume/analyze":            {},
	"/api/v1/resume/upload-and-analyze": {},
	"/api/v1/resume/chat":               {},
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateLimitGroupDefault,
			GroupFor:     rateLimitGroup,
			Limiter:      deps.Limiter,
			Rules: map[string]middleware.RateLimitRule{
				rateLimitGroupLLM: {
					Rate:  deps.Config.RateLimitLLMRPS,
					Burst: deps.Config.RateLimitLLMBurst,
				},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
		deps.ResumeHandler.RegisterAnalysisRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if _, ok := llmRoutes[c.FullPath()]; ok {
		return rateLimitGroupLLM
	}
	return rateLimitGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
