package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BruksfildServices01/care-scheduler/internal/config"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("AI API key is not configured")

// Generator turns a single prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint,
// Gemini's included, through go-openai.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(cfg *config.Config) *OpenAIGenerator {
	if strings.TrimSpace(cfg.AIAPIKey) == "" {
		return &OpenAIGenerator{model: cfg.AIModel}
	}

	oc := openai.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.AIBaseURL, "/")
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.AITimeout}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.AIModel,
	}
}

func (g *OpenAIGenerator) Configured() bool {
	return g.client != nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Generator = (*OpenAIGenerator)(nil)
