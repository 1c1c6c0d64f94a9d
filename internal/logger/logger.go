package logger

import (
	"log/slog"
	"os"

	"github.com/polkiloo/expensetracker/internal/config"
)

// New creates a JSON slog.Logger writing to stdout at the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.LogLevel
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
