package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tummybutters/wm/internal/models"
)

// Generator produces a structured insight payload from prompt data. The
// returned payload is already validated; callers may persist it directly.
type Generator interface {
	Generate(ctx context.Context, data PromptData) (models.InsightPayload, error)
}

// OpenAIConfig holds the model parameters for insight generation.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultOpenAIConfig returns the parameters used in production.
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		Model:       openai.GPT4TurboPreview,
		Temperature: 0.7,
		MaxTokens:   1000,
		Timeout:     60 * time.Second,
	}
}

// OpenAIGenerator calls the chat completion API in JSON mode and decodes
// the response into an insight payload.
type OpenAIGenerator struct {
	client *openai.Client
	config OpenAIConfig
	logger *slog.Logger
}

// NewOpenAIGenerator creates a generator from an API key and config.
func NewOpenAIGenerator(config OpenAIConfig, logger *slog.Logger) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(config.APIKey),
		config: config,
		logger: logger,
	}
}

// Generate builds the prompt pair, runs one chat completion, and parses
// the JSON payload. A response missing any required field is an error.
func (g *OpenAIGenerator) Generate(ctx context.Context, data PromptData) (models.InsightPayload, error) {
	var payload models.InsightPayload

	apiCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildUserPrompt(data),
			},
		},
	})
	if err != nil {
		return payload, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return payload, fmt.Errorf("no completion choices returned from model %s", g.config.Model)
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return payload, fmt.Errorf("empty response from model %s (finish_reason: %s)",
			g.config.Model, resp.Choices[0].FinishReason)
	}

	g.logger.Debug("insight completion received",
		"model", g.config.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return ParseInsightResponse(content)
}

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*({.+})\\s*```")

// ParseInsightResponse decodes a model response into a validated payload.
// A JSON object wrapped in a markdown code fence is unwrapped first.
func ParseInsightResponse(content string) (models.InsightPayload, error) {
	var payload models.InsightPayload

	jsonStr := content
	if matches := jsonFenceRe.FindStringSubmatch(content); len(matches) > 1 {
		jsonStr = matches[1]
	}

	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return payload, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	if err := payload.Validate(); err != nil {
		return payload, fmt.Errorf("invalid response structure: %w", err)
	}

	return payload, nil
}

// MockGenerator is a rule-based Generator for testing without API calls.
// Themes come from the prompt's top words, so tests can assert on them.
type MockGenerator struct {
	Err   error // when set, Generate fails with this error
	Calls int
}

// NewMockGenerator creates a mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate derives a deterministic payload from the prompt data.
func (m *MockGenerator) Generate(ctx context.Context, data PromptData) (models.InsightPayload, error) {
	m.Calls++
	if m.Err != nil {
		return models.InsightPayload{}, m.Err
	}

	themes := []string{}
	for i, w := range data.TopWords {
		if i == 3 {
			break
		}
		themes = append(themes, w.Word)
	}

	mood := "neutral"
	if data.BrierScore > 0 && data.BrierScore < 0.25 {
		mood = "calibrated"
	}

	return models.InsightPayload{
		Themes:      themes,
		Assumptions: []string{"predictions are improvable with practice"},
		Mood:        mood,
		Biases:      []string{"recency bias"},
		Summary: fmt.Sprintf("Placed %d bets with a Brier score of %.3f.",
			data.BetCounts.Total(), data.BrierScore),
	}, nil
}
