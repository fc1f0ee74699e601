package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "")
	t.Setenv("MAX_CONTEXT_CHARS", "")
	t.Setenv("ALLOWED_EXTENSIONS", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, "auto", cfg.AIProvider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAIModel)
	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, 8000, cfg.MaxContextChars)
	assert.Equal(t, int64(16*1024*1024), cfg.MaxContentLength)
	assert.Equal(t, []string{"txt", "pdf", "docx", "md"}, cfg.AllowedExtensions)
	assert.False(t, cfg.TracingEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AI_PROVIDER", "MOCK")
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("CHUNK_OVERLAP", "50")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mock", cfg.AIProvider)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.TracingEnabled())
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.ChunkSize)
}

func TestLoadConfig_RejectsNonPositiveChunkSize(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_RejectsNegativeOverlap(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "-1")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestIsAllowedExtension(t *testing.T) {
	cfg := &Config{AllowedExtensions: []string{"txt", "pdf", "docx", "md"}}

	tests := []struct {
		ext  string
		want bool
	}{
		{".txt", true},
		{"PDF", true},
		{".Docx", true},
		{"md", true},
		{".exe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsAllowedExtension(tt.ext))
		})
	}
}
