package bootstrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"hirelens/internal/llm"
	"hirelens/internal/llm/openai"
	"hirelens/internal/shared/config"
	"hirelens/internal/shared/telemetry"
)

func quiet(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })
}

func TestBuildWithoutKeysUsesPlaceholder(t *testing.T) {
	quiet(t)
	app, err := Build(context.Background(), config.Config{LLMProvider: "gemini"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.Close()

	if _, ok := app.LLM.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder client, got %T", app.LLM)
	}
	if app.LLMConfigured {
		t.Fatalf("expected LLMConfigured=false")
	}

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestBuildLLMOpenAI(t *testing.T) {
	quiet(t)
	client, closer, err := BuildLLM(context.Background(), config.Config{
		LLMProvider:  "openai",
		LLMModel:     "gpt-4o-mini",
		OpenAIAPIKey: "test-key",
	})
	if err != nil {
		t.Fatalf("build llm: %v", err)
	}
	if closer != nil {
		t.Fatalf("openai client needs no closer")
	}
	if _, ok := client.(*openai.Client); !ok {
		t.Fatalf("expected *openai.Client, got %T", client)
	}
}
