package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertChat inserts or refreshes a chat record. Idempotent: re-seeing
	// the same chat updates title/kind in place and never duplicates the row.
	UpsertChat(ctx context.Context, chat *Chat) error

	// SaveMessage appends a new message record and assigns message.ID.
	SaveMessage(ctx context.Context, message *Message) error

	// RecentMessages retrieves up to 'limit' most recent messages for a chat,
	// in ascending insertion order. Unknown or empty chats yield an empty
	// slice, not an error.
	RecentMessages(ctx context.Context, chatID int64, limit int) ([]Message, error)

	// CountMessages returns the number of recorded messages for a chat.
	CountMessages(ctx context.Context, chatID int64) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertChat inserts a chat record or refreshes its title and kind in place.
func (s *sqlxStore) UpsertChat(ctx context.Context, chat *Chat) error {
	if chat == nil {
		return fmt.Errorf("cannot upsert nil chat")
	}
	if chat.ChatID == 0 {
		return fmt.Errorf("chat must have a non-zero chat_id")
	}
	if chat.Kind == "" {
		chat.Kind = ChatKindGroup
	}

	now := time.Now().UTC()
	chat.UpdatedAt = now
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}

	query := `
        INSERT INTO chats (chat_id, title, kind, created_at, updated_at)
        VALUES (:chat_id, :title, :kind, :created_at, :updated_at)
        ON CONFLICT (chat_id) DO UPDATE SET
            title = excluded.title,
            kind = excluded.kind,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.NamedExecContext(ctx, query, chat); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting chat", "chat_id", chat.ChatID, "error", err)
		return fmt.Errorf("failed to upsert chat %d: %w", chat.ChatID, err)
	}

	s.logger.DebugContext(ctx, "Chat upserted successfully", "chat_id", chat.ChatID, "kind", chat.Kind)
	return nil
}

// SaveMessage appends a new message record. Messages with empty text are
// recorded too, so window counts stay faithful to the conversation.
func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}
	if message.UserID == 0 {
		return fmt.Errorf("message must have a non-zero user_id")
	}
	if message.Timestamp.IsZero() {
		// Source-supplied timestamp missing, fall back to ingestion time.
		message.Timestamp = time.Now().UTC()
	}
	message.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving message",
			"chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	query := `
        INSERT INTO messages (chat_id, user_id, username, first_name, last_name, text, timestamp, created_at)
        VALUES (:chat_id, :user_id, :username, :first_name, :last_name, :text, :timestamp, :created_at);
    `

	result, err := tx.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message", "chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to save message (chat %d, user %d): %w", message.ChatID, message.UserID, err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		//nolint:gosec // integer overflow conversion is acceptable here
		message.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving message",
			"chat_id", message.ChatID, "user_id", message.UserID, "error", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction",
			"chat_id", message.ChatID, "user_id", message.UserID, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Message saved successfully",
		"chat_id", message.ChatID, "user_id", message.UserID, "message_id", message.ID)
	return nil
}

// RecentMessages retrieves up to 'limit' most recent messages for a chat in
// ascending insertion order. Ordering is defined solely by the insertion id,
// never by timestamp, so two reads against an unchanged log return identical
// results even when timestamps collide.
func (s *sqlxStore) RecentMessages(ctx context.Context, chatID int64, limit int) ([]Message, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if limit <= 0 {
		return []Message{}, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var messages []Message
	query := `
        SELECT id, chat_id, user_id, username, first_name, last_name, text, timestamp, created_at
        FROM messages
        WHERE chat_id = ?
        ORDER BY id DESC
        LIMIT ?;
    `

	s.logger.DebugContext(ctx, "Fetching recent messages", "chat_id", chatID, "limit", limit)
	err := s.db.SelectContext(ctx, &messages, query, chatID, limit)

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching messages",
			"chat_id", chatID, "error", err)
		return nil, err
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting recent messages", "chat_id", chatID, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to get recent messages for chat %d: %w", chatID, err)
	}

	// Rows come back newest first, reverse for chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	s.logger.DebugContext(ctx, "Fetched recent messages successfully", "chat_id", chatID, "count", len(messages))
	return messages, nil
}

// CountMessages returns the number of recorded messages for a chat.
func (s *sqlxStore) CountMessages(ctx context.Context, chatID int64) (int64, error) {
	if chatID == 0 {
		return 0, fmt.Errorf("chat_id cannot be zero")
	}

	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages WHERE chat_id = ?`, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error counting messages", "chat_id", chatID, "error", err)
		return 0, fmt.Errorf("failed to count messages for chat %d: %w", chatID, err)
	}

	return count, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
