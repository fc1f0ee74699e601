package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Upload handling
	UploadFolder      string
	MaxContentLength  int64
	AllowedExtensions []string

	// Segmentation and context budget
	ChunkSize       int
	ChunkOverlap    int
	MaxContextChars int

	// Answering provider
	AIProvider    string // "auto" (default), "openai", "mock"
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Rate limiting (requests per window, per client IP)
	RateLimitReqs   int
	RateLimitWindow int

	// OpenTelemetry; tracing is disabled when the endpoint is empty
	OTLPEndpoint string
	ServiceName  string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "5001"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5001")),

		UploadFolder:      getEnv("UPLOAD_FOLDER", "./uploads"),
		MaxContentLength:  getEnvInt64("MAX_CONTENT_LENGTH", 16*1024*1024), // 16MB
		AllowedExtensions: splitList(strings.ToLower(getEnv("ALLOWED_EXTENSIONS", "txt,pdf,docx,md"))),

		ChunkSize:       getEnvInt("CHUNK_SIZE", 2000),
		ChunkOverlap:    getEnvInt("CHUNK_OVERLAP", 200),
		MaxContextChars: getEnvInt("MAX_CONTEXT_CHARS", 8000),

		AIProvider:    strings.ToLower(getEnv("AI_PROVIDER", "auto")),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "doc-qa-assistant"),
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", cfg.ChunkOverlap)
	}
	if cfg.MaxContentLength <= 0 {
		return nil, fmt.Errorf("MAX_CONTENT_LENGTH must be positive, got %d", cfg.MaxContentLength)
	}

	return cfg, nil
}

// TracingEnabled reports whether an OTLP collector endpoint is configured
func (c *Config) TracingEnabled() bool {
	return c.OTLPEndpoint != ""
}

// IsAllowedExtension reports whether ext (with or without the leading dot)
// is one of the configured upload extensions.
func (c *Config) IsAllowedExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
