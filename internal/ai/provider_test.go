package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"auto", ModeAuto, false},
		{"", ModeAuto, false},
		{"openai", ModeOpenAI, false},
		{" OpenAI ", ModeOpenAI, false},
		{"mock", ModeMock, false},
		{"gemini", "", true},
		{"fallback", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_Select(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		cfgKey string
		envKey string
		want   any
	}{
		{"auto without key", ModeAuto, "", "", &KeywordProvider{}},
		{"auto with env key", ModeAuto, "", "sk-env", &OpenAIProvider{}},
		{"auto with configured key", ModeAuto, "sk-cfg", "", &OpenAIProvider{}},
		{"openai without key", ModeOpenAI, "", "", &OpenAIProvider{}},
		{"mock with key", ModeMock, "sk-cfg", "sk-env", &KeywordProvider{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			p, err := NewSelector(OpenAIConfig{APIKey: tt.cfgKey}, nil).Select(tt.mode)

			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestSelector_InvalidMode(t *testing.T) {
	p, err := NewSelector(OpenAIConfig{}, nil).Select(Mode("gemini"))

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrInvalidProvider)
}

func TestSelector_ExplicitOpenAIDefersMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	p, err := NewSelector(OpenAIConfig{}, nil).Select(ModeOpenAI)
	require.NoError(t, err)

	assert.Equal(t, MissingKeyMessage, p.AnswerQuestion(context.Background(), "q", "c"))
}

func TestSelector_ProvidersShareBreaker(t *testing.T) {
	s := NewSelector(OpenAIConfig{APIKey: "sk-test"}, nil)

	first, err := s.Select(ModeOpenAI)
	require.NoError(t, err)
	second, err := s.Select(ModeAuto)
	require.NoError(t, err)

	assert.Same(t, first.(*OpenAIProvider).breaker, second.(*OpenAIProvider).breaker)
}

func TestSelectProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	p, err := SelectProvider("auto")
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())

	t.Setenv("OPENAI_API_KEY", "sk-env")
	p, err = SelectProvider("auto")
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = SelectProvider("nope")
	assert.ErrorIs(t, err, ErrInvalidProvider)
}
