package handlers

import (
	"log/slog"

	"github.com/akarpov/recapbot/internal/config"
	"github.com/akarpov/recapbot/internal/database"
	"github.com/akarpov/recapbot/internal/digest"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Digest *digest.Service
}
