package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMessageHandler creates the default handler that records every inbound
// chat message into the message store. It also greets the chat when the bot
// itself is added as a member.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil {
		log.DebugContext(ctx, "Ignoring non-message update", "update_id", update.ID)
		return
	}

	if h.greetIfAdded(ctx, b, msg) {
		return
	}

	if msg.From == nil {
		log.DebugContext(ctx, "Ignoring message without sender", "update_id", update.ID)
		return
	}

	botInfo := deps.Config.Telegram.BotInfo
	if botInfo != nil && msg.From.ID == botInfo.ID {
		// The bot's own replies are saved at send time.
		return
	}

	if strings.HasPrefix(msg.Text, "/") {
		// Commands are handled by their own handlers and are not part of
		// the discussion being summarized.
		return
	}

	log.DebugContext(ctx, "Recording message", "chat_id", msg.Chat.ID, "user_id", msg.From.ID)
	recordChatAndMessage(ctx, deps, chatFromMessage(msg), messageFromUpdate(msg))
}

// greetIfAdded sends the welcome message when the bot joins a chat.
// Returns true when the update was a member-join event for the bot.
func (h messageHandler) greetIfAdded(ctx context.Context, b *bot.Bot, msg *models.Message) bool {
	botInfo := h.deps.Config.Telegram.BotInfo
	if botInfo == nil || len(msg.NewChatMembers) == 0 {
		return false
	}

	for _, member := range msg.NewChatMembers {
		if member.ID != botInfo.ID {
			continue
		}
		log := h.deps.Logger.With("handler", "message")
		log.InfoContext(ctx, "Bot added to chat, sending welcome", "chat_id", msg.Chat.ID)
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   h.deps.Config.Messages.Welcome,
		}); err != nil {
			log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", msg.Chat.ID)
		}
		return true
	}

	return false
}
