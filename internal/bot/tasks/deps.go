// Package tasks implements scheduled background tasks for the bot.
package tasks

import (
	"log/slog"

	"github.com/akarpov/recapbot/internal/config"
	"github.com/akarpov/recapbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
