package handlers

import (
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
)

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "bare command", text: "/summarize", want: ""},
		{name: "command with count", text: "/summarize 50", want: "50"},
		{name: "command with question", text: "/ask What happened?", want: "What happened?"},
		{name: "tab separator", text: "/ask\t50 Who?", want: "50 Who?"},
		{name: "newline separator", text: "/ask\nmultiline question", want: "multiline question"},
		{name: "bot mention suffix", text: "/summarize@recap_bot 50", want: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := commandArgs(tt.text); got != tt.want {
				t.Errorf("commandArgs(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestMessageFromUpdate(t *testing.T) {
	t.Parallel()

	msg := &models.Message{
		ID:   7,
		Date: 1741944413, // 2025-03-14 09:26:53 UTC
		Chat: models.Chat{ID: -100, Title: "Test Group", Type: "group"},
		From: &models.User{ID: 42, Username: "alice", FirstName: "Alice"},
		Text: "hello",
	}

	got := messageFromUpdate(msg)
	if got.ChatID != -100 || got.UserID != 42 {
		t.Errorf("got chat_id=%d user_id=%d, want -100/42", got.ChatID, got.UserID)
	}
	if !got.Username.Valid || got.Username.String != "alice" {
		t.Errorf("got username %+v, want alice", got.Username)
	}
	if got.LastName.Valid {
		t.Errorf("absent last name must map to invalid NullString, got %+v", got.LastName)
	}
	if got.Text != "hello" {
		t.Errorf("got text %q, want hello", got.Text)
	}
	want := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	if !got.Timestamp.Equal(want) {
		t.Errorf("got timestamp %v, want %v", got.Timestamp, want)
	}
}

func TestChatFromMessage(t *testing.T) {
	t.Parallel()

	msg := &models.Message{
		Chat: models.Chat{ID: -100, Title: "Test Group", Type: models.ChatTypeSupergroup},
	}

	got := chatFromMessage(msg)
	if got.ChatID != -100 {
		t.Errorf("got chat_id %d, want -100", got.ChatID)
	}
	if !got.Title.Valid || got.Title.String != "Test Group" {
		t.Errorf("got title %+v, want Test Group", got.Title)
	}
	if got.Kind != "supergroup" {
		t.Errorf("got kind %q, want supergroup", got.Kind)
	}
}
