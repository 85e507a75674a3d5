// Package ai implements the AI collaborator used to turn an assembled chat
// context into a summary or an answer. Two backends are supported: any
// OpenAI-compatible endpoint (the default, selected with provider "openai")
// and Google's Gemini API (provider "gemini").
package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akarpov/recapbot/internal/config"
)

// Client is the interface for a single-attempt completion call. Dispatch is
// one round trip per command; the caller bounds it with a context timeout
// and handles failure with a fallback reply, so implementations must not
// retry internally.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// NewClient creates the AI client selected by cfg.Provider.
func NewClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Provider {
	case config.AIProviderOpenAI:
		return newOpenAIClient(cfg, log)
	case config.AIProviderGemini:
		return newGeminiClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
