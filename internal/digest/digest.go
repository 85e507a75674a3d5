// Package digest orchestrates the summarize and ask pipelines: select a
// window of recent messages, assemble the prompt, and dispatch a single AI
// call with a bounded timeout.
package digest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/akarpov/recapbot/internal/ai"
	"github.com/akarpov/recapbot/internal/command"
	"github.com/akarpov/recapbot/internal/database"
	"github.com/akarpov/recapbot/internal/prompt"
)

// ErrDispatchFailed wraps any AI dispatch error or timeout. Callers reply
// with a fixed fallback message and never surface the wrapped cause to the
// end user.
var ErrDispatchFailed = errors.New("ai dispatch failed")

// Service runs the summarize/ask pipelines over the message store and the
// AI client. It holds no mutable state of its own; all shared state lives
// behind the store.
type Service struct {
	store   database.Store
	client  ai.Client
	log     *slog.Logger
	timeout time.Duration
}

// NewService creates a digest service. timeout bounds each AI dispatch.
func NewService(store database.Store, client ai.Client, timeout time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:   store,
		client:  client,
		log:     log.With("component", "digest"),
		timeout: timeout,
	}
}

// Summarize produces a summary of the last args.N messages of the chat.
// An unknown or empty chat is not an error; the model is handed the
// no-history placeholder instead.
func (s *Service) Summarize(ctx context.Context, chatID int64, args command.Args) (string, error) {
	history, err := s.renderWindow(ctx, chatID, args.N)
	if err != nil {
		return "", err
	}

	return s.dispatch(ctx, chatID, args, prompt.Summary(history))
}

// Answer answers args.Question using the last args.N messages as context.
func (s *Service) Answer(ctx context.Context, chatID int64, args command.Args) (string, error) {
	history, err := s.renderWindow(ctx, chatID, args.N)
	if err != nil {
		return "", err
	}

	return s.dispatch(ctx, chatID, args, prompt.Question(history, args.Question))
}

// renderWindow reads the window and renders it into the history block. The
// store read completes before any AI call starts, so the dispatch never
// holds the store's serialization point.
func (s *Service) renderWindow(ctx context.Context, chatID int64, n int) (string, error) {
	window, err := s.store.RecentMessages(ctx, chatID, n)
	if err != nil {
		return "", fmt.Errorf("failed to read message window for chat %d: %w", chatID, err)
	}

	if len(window) == 0 {
		s.log.InfoContext(ctx, "No history recorded for chat, proceeding with empty context", "chat_id", chatID)
	}

	return prompt.Render(window), nil
}

// dispatch performs the single bounded AI call. Timeouts are treated the
// same as any other dispatch failure.
func (s *Service) dispatch(ctx context.Context, chatID int64, args command.Args, userPrompt string) (string, error) {
	aiCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.client.Complete(aiCtx, prompt.SystemInstruction, userPrompt)
	if err != nil {
		s.log.ErrorContext(ctx, "AI dispatch failed",
			"chat_id", chatID, "command", args.Kind.String(), "n", args.N, "error", err)
		return "", fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	return answer, nil
}
