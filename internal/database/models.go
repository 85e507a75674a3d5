package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Chat kinds as reported by the Telegram API.
const (
	ChatKindGroup      = "group"
	ChatKindSupergroup = "supergroup"
	ChatKindPrivate    = "private"
	ChatKindChannel    = "channel"
)

// Chat represents metadata for a chat the bot has seen. One row per chat_id;
// title and kind are refreshed on every upsert since they may change upstream.
type Chat struct {
	ChatID    int64          `db:"chat_id"`
	Title     sql.NullString `db:"title"`
	Kind      string         `db:"kind"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Message represents a single recorded chat message. The ID is assigned by
// the store on insert and strictly increases with insertion order within a
// chat; rows are never mutated or reordered afterwards.
type Message struct {
	ID        uint           `db:"id"`
	ChatID    int64          `db:"chat_id"`
	UserID    int64          `db:"user_id"`
	Username  sql.NullString `db:"username"`
	FirstName sql.NullString `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Text      string         `db:"text"`
	Timestamp time.Time      `db:"timestamp"`
	CreatedAt time.Time      `db:"created_at"`
}

// SenderLabel returns the display label for the message sender, preferring
// the username, then the first+last name, then the raw user ID.
func (m *Message) SenderLabel() string {
	if m.Username.Valid && m.Username.String != "" {
		return m.Username.String
	}

	name := ""
	if m.FirstName.Valid {
		name = m.FirstName.String
	}
	if m.LastName.Valid && m.LastName.String != "" {
		if name != "" {
			name += " "
		}
		name += m.LastName.String
	}
	if name != "" {
		return name
	}

	return fmt.Sprintf("user %d", m.UserID)
}
