package ai

import (
	"context"
	"errors"

	"doc-qa-assistant/internal/logger"
	"doc-qa-assistant/internal/telemetry"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"

	// MissingKeyMessage is returned instead of calling the API without a key.
	MissingKeyMessage = "Error: OpenAI API key not configured. Set OPENAI_API_KEY environment variable."

	// FailurePrefix starts every answer produced from a failed API call.
	FailurePrefix = "Error calling OpenAI API: "

	openAITemperature = 0.3
	openAIMaxTokens   = 1000
)

const systemPrompt = `You are a helpful assistant that answers questions based on the provided document context.

Rules:
- Only answer based on the information in the context provided
- If the answer cannot be found in the context, say so clearly
- Be concise but thorough
- Quote relevant parts of the document when helpful`

// OpenAIProvider answers through the OpenAI chat completions API.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	breaker *gobreaker.CircuitBreaker
	metrics *telemetry.Metrics
}

// NewOpenAIProvider builds a provider with its own circuit breaker.
// Use a Selector to share one breaker between providers.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	return newOpenAIProvider(cfg, newBreaker("OpenAIAPI", nil), nil)
}

func newOpenAIProvider(cfg OpenAIConfig, breaker *gobreaker.CircuitBreaker, metrics *telemetry.Metrics) *OpenAIProvider {
	p := &OpenAIProvider{
		model:   cfg.Model,
		breaker: breaker,
		metrics: metrics,
	}
	if p.model == "" {
		p.model = DefaultOpenAIModel
	}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		p.client = openai.NewClientWithConfig(clientCfg)
	}
	return p
}

func (p *OpenAIProvider) Name() string { return string(ModeOpenAI) }

// AnswerQuestion makes one chat completion call. Any failure, including a
// missing key or an open breaker, comes back as the answer text.
func (p *OpenAIProvider) AnswerQuestion(ctx context.Context, question, docContext string) string {
	if p.client == nil {
		return MissingKeyMessage
	}

	tracer := otel.Tracer("openai-client")
	ctx, span := tracer.Start(ctx, "openai.chat_completion")
	defer span.End()

	span.SetAttributes(
		attribute.String("openai.model", p.model),
		attribute.Int("openai.context_chars", len(docContext)),
	)

	result, err := p.breaker.Execute(func() (interface{}, error) {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(question, docContext)},
			},
			Temperature: openAITemperature,
			MaxTokens:   openAIMaxTokens,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("response contained no choices")
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("openai.circuit_breaker_open", true))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("OpenAI request failed", "model", p.model, "error", err)
		return FailurePrefix + err.Error()
	}

	resp := result.(openai.ChatCompletionResponse)
	span.SetAttributes(attribute.Int("openai.total_tokens", resp.Usage.TotalTokens))
	p.metrics.RecordTokensUsed(int64(resp.Usage.TotalTokens), p.model)

	return resp.Choices[0].Message.Content
}

func buildUserPrompt(question, docContext string) string {
	return "Document Context:\n---\n" + docContext + "\n---\n\nQuestion: " + question +
		"\n\nAnswer based only on the document context above:"
}
