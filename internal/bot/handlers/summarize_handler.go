package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/akarpov/recapbot/internal/command"
	"github.com/akarpov/recapbot/internal/digest"
)

// NewSummarizeHandler returns a handler for the /summarize command.
func NewSummarizeHandler(deps HandlerDeps) bot.HandlerFunc {
	return summarizeHandler{deps}.Handle
}

// summarizeHandler processes the /summarize command using injected dependencies.
type summarizeHandler struct {
	deps HandlerDeps
}

func (h summarizeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "summarize")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.WarnContext(ctx, "Summarize handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := msg.Chat.ID
	args := command.ParseSummarize(commandArgs(msg.Text))
	log.InfoContext(ctx, "Handling /summarize command", "chat_id", chatID, "user_id", msg.From.ID, "n", args.N)

	// The chat may be issuing its first command before any recorded message.
	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	if err := deps.Store.UpsertChat(dbCtx, chatFromMessage(msg)); err != nil {
		log.ErrorContext(ctx, "Failed to upsert chat", "chat_id", chatID, "error", err)
	}
	cancel()

	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})

	answer, err := deps.Digest.Summarize(ctx, chatID, args)
	switch {
	case errors.Is(err, digest.ErrDispatchFailed):
		sendReply(ctx, b, deps, chatID, msg.ID, deps.Config.Messages.AIFallback)
		return
	case err != nil:
		log.ErrorContext(ctx, "Summarize pipeline failed", "chat_id", chatID, "n", args.N, "error", err)
		sendReply(ctx, b, deps, chatID, msg.ID, deps.Config.Messages.GeneralError)
		return
	}

	sendReply(ctx, b, deps, chatID, msg.ID, answer)
}
