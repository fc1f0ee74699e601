package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"doc-qa-assistant/internal/logger"
	"doc-qa-assistant/internal/telemetry"

	"github.com/sony/gobreaker"
)

// Provider answers a question from the supplied document context.
// Implementations never fail: problems are reported in the returned text.
type Provider interface {
	AnswerQuestion(ctx context.Context, question, docContext string) string
	Name() string
}

// Mode selects which Provider variant answers questions.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeOpenAI Mode = "openai"
	ModeMock   Mode = "mock"
)

var ErrInvalidProvider = errors.New("invalid AI provider")

// ParseMode validates a configured provider mode. An empty value means auto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeOpenAI, ModeMock:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (use openai, mock or auto)", ErrInvalidProvider, s)
	}
}

// OpenAIConfig carries what the remote provider needs.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Selector builds providers. Remote providers built by the same Selector
// share one circuit breaker.
type Selector struct {
	cfg     OpenAIConfig
	breaker *gobreaker.CircuitBreaker
	metrics *telemetry.Metrics
}

func NewSelector(cfg OpenAIConfig, metrics *telemetry.Metrics) *Selector {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	return &Selector{
		cfg:     cfg,
		breaker: newBreaker("OpenAIAPI", metrics),
		metrics: metrics,
	}
}

// Select resolves mode to a provider. Auto picks the remote provider only
// when an API key is available at the time of the call.
func (s *Selector) Select(mode Mode) (Provider, error) {
	switch mode {
	case ModeOpenAI:
		return s.openAI(s.apiKey()), nil
	case ModeMock:
		return NewKeywordProvider(), nil
	case ModeAuto:
		if key := s.apiKey(); key != "" {
			return s.openAI(key), nil
		}
		return NewKeywordProvider(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, mode)
	}
}

func (s *Selector) apiKey() string {
	if s.cfg.APIKey != "" {
		return s.cfg.APIKey
	}
	return os.Getenv("OPENAI_API_KEY")
}

func (s *Selector) openAI(key string) *OpenAIProvider {
	cfg := s.cfg
	cfg.APIKey = key
	return newOpenAIProvider(cfg, s.breaker, s.metrics)
}

// SelectProvider resolves a mode string using only the process environment.
func SelectProvider(mode string) (Provider, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	return NewSelector(OpenAIConfig{
		Model:   os.Getenv("OPENAI_MODEL"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}, nil).Select(m)
}

func newBreaker(name string, metrics *telemetry.Metrics) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// A caller that gave up says nothing about the API's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.RecordCircuitBreakerState("openai", to.String())
		},
	})
}
