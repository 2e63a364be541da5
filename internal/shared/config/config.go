package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName         string
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string

	LLMProvider   string
	LLMModel      string
	GoogleAPIKey  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMTimeout    time.Duration

	MaxUploadBytes int64

	RateLimitLLMRPS   float64
	RateLimitLLMBurst int
}

const (
	defaultMaxUploadBytes = 2 << 20
	defaultLLMTimeout     = 120 * time.Second
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("LLM_PROVIDER", "gemini"))
	return Config{
		AppName:           getEnv("APP_NAME", "Hire Lens Resume Checker"),
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LLMProvider:       provider,
		LLMModel:          getEnv("LLM_MODEL", defaultModel(provider)),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		LLMTimeout:        time.Duration(getInt("LLM_TIMEOUT_SECONDS", int(defaultLLMTimeout/time.Second))) * time.Second,
		MaxUploadBytes:    int64(getInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		RateLimitLLMRPS:   getFloat("RATE_LIMIT_LLM_RPS", 1),
		RateLimitLLMBurst: getInt("RATE_LIMIT_LLM_BURST", 5),
	}
}

// loadEnvFiles loads the given files if they exist. Variables already set in
// the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "gemini"
	}
}

func defaultModel(provider string) string {
	if provider == "openai" {
		return "gpt-4o-mini"
	}
	return "gemini-2.5-flash"
}
