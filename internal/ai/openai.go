package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/akarpov/recapbot/internal/config"
)

// thinkingTags mark the end of the reasoning section emitted by some
// "thinking" models served over OpenAI-compatible endpoints. Anything up to
// and including the first matching tag is stripped from the reply.
var thinkingTags = []string{"</think>", "</reasoning>", "<|im_end|>"}

type openAIClient struct {
	client *openai.Client
	log    *slog.Logger
	model  string
	temp   float32
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("AI token is required")
	}

	clientCfg := openai.DefaultConfig(cfg.Token)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI-compatible client initialized", "model", cfg.Model, "base_url", clientCfg.BaseURL)

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		log:    logger,
		model:  cfg.Model,
		temp:   cfg.Temperature,
	}, nil
}

func (c *openAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.log.DebugContext(ctx, "Sending completion request", "model", c.model, "prompt_len", len(user))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Completion request failed", "model", c.model, "error", err)
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.WarnContext(ctx, "Completion response has no choices", "model", c.model)
		return "", fmt.Errorf("completion returned no choices")
	}

	answer := stripReasoning(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("completion returned empty content")
	}

	c.log.DebugContext(ctx, "Completion request succeeded", "model", c.model, "answer_len", len(answer))
	return answer, nil
}

// stripReasoning removes the reasoning prelude produced by thinking models,
// returning only the final answer after the closing tag.
func stripReasoning(text string) string {
	text = strings.TrimSpace(text)
	for _, tag := range thinkingTags {
		if idx := strings.Index(text, tag); idx != -1 {
			return strings.TrimSpace(text[idx+len(tag):])
		}
	}
	return text
}
