package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"knowledgebot/internal/config"
)

// NewChatModel builds the hosted chat model from config.
func NewChatModel(cfg *config.LLMConfig) (*openai.LLM, error) {
	opts := []openai.Option{
		openai.WithToken(strings.TrimPrefix(cfg.ResolveKey(), "Bearer ")),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	return openai.New(opts...)
}

// GenerateAnswer runs one chat completion over a system instruction and a
// human turn. Temperature 0 keeps decoding deterministic.
func GenerateAnswer(ctx context.Context, model llms.Model, system, human string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, human),
	}

	resp, err := model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
