// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and shared helpers.
package handlers

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/akarpov/recapbot/internal/database"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second
)

// commandArgs returns everything after the leading command token.
func commandArgs(text string) string {
	if idx := strings.IndexAny(text, " \t\n"); idx != -1 {
		return text[idx+1:]
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// chatFromMessage maps a Telegram chat into a registry record.
func chatFromMessage(msg *models.Message) *database.Chat {
	return &database.Chat{
		ChatID: msg.Chat.ID,
		Title:  nullString(msg.Chat.Title),
		Kind:   string(msg.Chat.Type),
	}
}

// messageFromUpdate maps an inbound Telegram message into a store record.
// Messages without text are still mapped; the store records them to keep
// window counts faithful.
func messageFromUpdate(msg *models.Message) *database.Message {
	ts := time.Unix(int64(msg.Date), 0).UTC()
	return &database.Message{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Username:  nullString(msg.From.Username),
		FirstName: nullString(msg.From.FirstName),
		LastName:  nullString(msg.From.LastName),
		Text:      msg.Text,
		Timestamp: ts,
	}
}

// recordChatAndMessage upserts the chat registry entry and appends the
// message to the log. Failures are logged, not propagated: losing one
// message must not break update handling.
func recordChatAndMessage(ctx context.Context, deps HandlerDeps, chat *database.Chat, msg *database.Message) {
	log := deps.Logger.With("component", "recorder")

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()

	if err := deps.Store.UpsertChat(dbCtx, chat); err != nil {
		log.ErrorContext(ctx, "Failed to upsert chat", "chat_id", chat.ChatID, "error", err)
		return
	}
	if err := deps.Store.SaveMessage(dbCtx, msg); err != nil {
		log.ErrorContext(ctx, "Failed to save message", "chat_id", msg.ChatID, "error", err)
	}
}

// sendReply sends text as a MarkdownV2 reply, falling back to plain text if
// Telegram rejects the formatting. The sent reply is saved into the message
// log so later summaries see the bot's own contributions.
func sendReply(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, replyTo int, text string) {
	log := deps.Logger.With("component", "reply")

	if ctx.Err() != nil {
		log.WarnContext(ctx, "Context cancelled before sending reply", "chat_id", chatID, "error", ctx.Err())
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	sent, err := b.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            bot.EscapeMarkdown(text),
		ParseMode:       models.ParseModeMarkdown,
		ReplyParameters: &models.ReplyParameters{MessageID: replyTo},
	})
	if err != nil {
		log.WarnContext(ctx, "MarkdownV2 send failed, retrying as plain text", "chat_id", chatID, "error", err)
		sent, err = b.SendMessage(sendCtx, &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            text,
			ReplyParameters: &models.ReplyParameters{MessageID: replyTo},
		})
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply message", "chat_id", chatID, "error", err)
		return
	}

	log.DebugContext(ctx, "Sent reply", "chat_id", chatID, "message_id", sent.ID)

	if deps.Config.Telegram.BotInfo == nil || deps.Config.Telegram.BotInfo.ID == 0 {
		log.WarnContext(ctx, "Bot info missing, skipping saving bot reply", "chat_id", chatID)
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()
	reply := &database.Message{
		ChatID:    chatID,
		UserID:    deps.Config.Telegram.BotInfo.ID,
		Username:  nullString(deps.Config.Telegram.BotInfo.Username),
		FirstName: nullString(deps.Config.Telegram.BotInfo.FirstName),
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if err := deps.Store.SaveMessage(dbCtx, reply); err != nil {
		log.ErrorContext(ctx, "Failed to save bot reply", "chat_id", chatID, "error", err)
	}
}
