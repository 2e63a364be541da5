package bootstrap

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"hirelens/internal/analyses"
	"hirelens/internal/chat"
	"hirelens/internal/llm"
	"hirelens/internal/llm/gemini"
	"hirelens/internal/llm/openai"
	"hirelens/internal/resumes"
	"hirelens/internal/services/health"
	"hirelens/internal/sessions"
	"hirelens/internal/shared/config"
	"hirelens/internal/shared/server"
	"hirelens/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             llm.Client
	LLMConfigured   bool
	Sessions        sessions.Store
	AnalysesService *analyses.Service
	SessionsService *sessions.Service
	ChatService     *chat.Service
	ResumesService  *resumes.Service

	closers []func() error
}

// Build wires services, handlers and the router from cfg.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	app := &App{Config: cfg}

	client, closer, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		app.closers = append(app.closers, closer)
	}
	_, placeholder := client.(llm.PlaceholderClient)
	app.LLM = client
	app.LLMConfigured = !placeholder

	store := sessions.NewMemoryStore()
	app.Sessions = store
	app.AnalysesService = analyses.NewService(client)
	app.SessionsService = sessions.NewService(store)
	app.ChatService = chat.NewService(store, client)
	app.ResumesService = resumes.NewService(app.AnalysesService, app.SessionsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(cfg.AppName, cfg.LLMProvider, app.LLMConfigured),
		ResumeHandler:   resumes.NewHandler(app.ResumesService, cfg.MaxUploadBytes),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		SessionHandler:  sessions.NewHandler(app.SessionsService),
		ChatHandler:     chat.NewHandler(app.ChatService),
	})

	return app, nil
}

// BuildLLM returns the configured provider, or a placeholder when its key is
// missing so parsing-only routes keep working.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, func() error, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			warnPlaceholder(cfg, "OPENAI_API_KEY")
			return llm.PlaceholderClient{}, nil, nil
		}
		client, err := openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, nil, nil
	default:
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			warnPlaceholder(cfg, "GOOGLE_API_KEY")
			return llm.PlaceholderClient{}, nil, nil
		}
		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:  cfg.GoogleAPIKey,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}
}

func warnPlaceholder(cfg config.Config, key string) {
	telemetry.Warn("bootstrap.llm_not_configured", map[string]any{
		"provider": cfg.LLMProvider,
		"missing":  key,
	})
}

// Close releases provider connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
