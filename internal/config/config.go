// Package config provides configuration loading, defaults, and validation.
// Values come from defaults, an optional YAML file, and BOT_* environment
// variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// Supported AI providers.
const (
	AIProviderOpenAI = "openai"
	AIProviderGemini = "gemini"
)

// Config defines the application configuration for all components: logging,
// the Telegram transport, the AI client, the database, and scheduled tasks.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	AI        AIConfig        `mapstructure:"ai"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram transport settings. BotInfo is populated at
// startup from GetMe and is not read from the config file.
type TelegramConfig struct {
	Token   string       `mapstructure:"token" validate:"required"`
	BotInfo *models.User `mapstructure:"-"`
}

// AIConfig holds settings for the AI collaborator. With the default
// "openai" provider any OpenAI-compatible endpoint works; point base_url at
// the vendor's API (e.g. https://api.cerebras.ai/v1).
type AIConfig struct {
	Provider    string        `mapstructure:"provider"    validate:"oneof=openai gemini"`
	Token       string        `mapstructure:"token"       validate:"required"`
	BaseURL     string        `mapstructure:"base_url"    validate:"omitempty,url"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds the scheduled task table.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a named task with a cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds the user-visible reply texts.
type MessagesConfig struct {
	Welcome       string `mapstructure:"welcome"        validate:"required"`
	EmptyQuestion string `mapstructure:"empty_question" validate:"required"`
	GeneralError  string `mapstructure:"general_error"  validate:"required"`
	AIFallback    string `mapstructure:"ai_fallback"    validate:"required"`
}

// LoadConfig loads and validates configuration from defaults, the YAML file
// at configPath (optional), and BOT_* environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Missing config file is fine, defaults and env vars still apply. With an
	// explicit SetConfigFile viper reports a missing file as fs.ErrNotExist
	// rather than ConfigFileNotFoundError.
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("ai.provider", AIProviderOpenAI)
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 1.0)
	v.SetDefault("ai.timeout", 2*time.Minute)

	v.SetDefault("database.path", "./storage.db")

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 4 * * *")

	v.SetDefault("messages.welcome",
		"Hello! I record this chat's messages so I can analyze them later.\n"+
			"Use /summarize [n] for a summary of the last n messages (default: 100).\n"+
			"Use /ask [n] <question> to ask a question about the last n messages.")
	v.SetDefault("messages.empty_question",
		"Please provide a question after the command. Example: /ask What was decided about the project?")
	v.SetDefault("messages.general_error",
		"An error occurred. Please try again later.")
	v.SetDefault("messages.ai_fallback",
		"Analysis is temporarily unavailable. Please try again later.")
}
