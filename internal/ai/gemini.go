package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/akarpov/recapbot/internal/config"
)

type geminiClient struct {
	client *genai.Client
	log    *slog.Logger
	model  string
	temp   float32
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("AI token is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)

	return &geminiClient{
		client: gi,
		log:    logger,
		model:  cfg.Model,
		temp:   cfg.Temperature,
	}, nil
}

func (c *geminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.log.DebugContext(ctx, "Sending completion request", "model", c.model, "prompt_len", len(user))

	temp := c.temp
	genCfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	contents := []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Completion request failed", "model", c.model, "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("gemini request blocked by safety filter: %s", reason)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		c.log.WarnContext(ctx, "Gemini response is empty", "model", c.model)
		return "", fmt.Errorf("gemini returned empty content")
	}

	c.log.DebugContext(ctx, "Completion request succeeded", "model", c.model, "answer_len", len(answer))
	return answer, nil
}
