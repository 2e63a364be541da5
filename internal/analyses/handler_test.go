package analyses

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hirelens/internal/llm"
	"hirelens/internal/shared/telemetry"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func quietLogs(t *testing.T) {
	t.Helper()
	telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })
}

func postAnalyze(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return payload.Error.Code
}

func TestAnalyzeHandlerReturnsResult(t *testing.T) {
	quietLogs(t)
	stub := &scriptedLLM{replies: []scriptedReply{reply("summary"), reply(validAnalysis)}}
	r := newTestRouter(newTestService(stub))

	w := postAnalyze(r, `{"resume_text":"Jane Doe\nSkills\nGo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"summary", "strengths", "weaknesses", "improvement_tips", "suggested_roles", "ats_score"} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing key %s in %v", key, got)
		}
	}
}

func TestAnalyzeHandlerValidation(t *testing.T) {
	quietLogs(t)
	r := newTestRouter(newTestService(&scriptedLLM{}))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing key", body: `{}`},
		{name: "empty text", body: `{"resume_text":"   "}`},
		{name: "not json", body: `resume`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := postAnalyze(r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if code := errorCode(t, w); code != ErrorCodeValidation {
				t.Fatalf("expected validation_error, got %q", code)
			}
		})
	}
}

func TestAnalyzeHandlerMapsProviderErrors(t *testing.T) {
	quietLogs(t)
	tests := []struct {
		name   string
		client llm.Client
		status int
		code   string
	}{
		{name: "not configured", client: llm.PlaceholderClient{}, status: http.StatusServiceUnavailable, code: ErrorCodeLLMUnavailable},
		{name: "provider failure", client: &scriptedLLM{replies: []scriptedReply{failure(errors.New("openai http status 401"))}}, status: http.StatusBadGateway, code: ErrorCodeLLM},
		{name: "schema mismatch", client: &scriptedLLM{replies: []scriptedReply{reply("s"), reply("x"), reply("y")}}, status: http.StatusBadGateway, code: ErrorCodeSchemaMismatch},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := postAnalyze(newTestRouter(newTestService(tt.client)), `{"resume_text":"resume"}`)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if code := errorCode(t, w); code != tt.code {
				t.Fatalf("expected %q, got %q", tt.code, code)
			}
		})
	}
}
