package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"hirelens/internal/analyses"
	"hirelens/internal/shared/telemetry"
)

func TestGetSessionHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	svc := NewService(NewMemoryStore())
	svc.NewID = func() string { return "fixed-id" }
	if _, err := svc.Create(context.Background(), analyses.Result{Summary: "sum", ATSScore: 70}); err != nil {
		t.Fatalf("create: %v", err)
	}

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resume/sessions/fixed-id", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got struct {
		SessionID   string          `json:"session_id"`
		Analysis    analyses.Result `json:"analysis"`
		ChatHistory []any           `json:"chat_history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SessionID != "fixed-id" || got.Analysis.ATSScore != 70 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	if got.ChatHistory == nil || len(got.ChatHistory) != 0 {
		t.Fatalf("expected empty chat history array, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/resume/sessions/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
