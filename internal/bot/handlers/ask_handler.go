package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/akarpov/recapbot/internal/command"
	"github.com/akarpov/recapbot/internal/digest"
)

// NewAskHandler returns a handler for the /ask command.
func NewAskHandler(deps HandlerDeps) bot.HandlerFunc {
	return askHandler{deps}.Handle
}

// askHandler processes the /ask command using injected dependencies.
type askHandler struct {
	deps HandlerDeps
}

func (h askHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "ask")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.WarnContext(ctx, "Ask handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := msg.Chat.ID
	args, err := command.ParseAsk(commandArgs(msg.Text))
	if errors.Is(err, command.ErrEmptyQuestion) {
		log.InfoContext(ctx, "Ask command without question text", "chat_id", chatID, "user_id", msg.From.ID)
		sendReply(ctx, b, deps, chatID, msg.ID, deps.Config.Messages.EmptyQuestion)
		return
	}

	log.InfoContext(ctx, "Handling /ask command", "chat_id", chatID, "user_id", msg.From.ID, "n", args.N)

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	if err := deps.Store.UpsertChat(dbCtx, chatFromMessage(msg)); err != nil {
		log.ErrorContext(ctx, "Failed to upsert chat", "chat_id", chatID, "error", err)
	}
	cancel()

	_, _ = b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})

	answer, err := deps.Digest.Answer(ctx, chatID, args)
	switch {
	case errors.Is(err, digest.ErrDispatchFailed):
		sendReply(ctx, b, deps, chatID, msg.ID, deps.Config.Messages.AIFallback)
		return
	case err != nil:
		log.ErrorContext(ctx, "Ask pipeline failed", "chat_id", chatID, "n", args.N, "error", err)
		sendReply(ctx, b, deps, chatID, msg.ID, deps.Config.Messages.GeneralError)
		return
	}

	sendReply(ctx, b, deps, chatID, msg.ID, answer)
}
