package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/serviceregistry-backend/internal/config"
)

// Component names used in the "component" attribute of every log line.
const (
	ComponentServer  = "server"
	ComponentSeeder  = "seeder"
	ComponentMigrate = "migrate"
	ComponentCleanup = "cleanup"
)

// NewLogger builds the process logger on stderr, tags it with the
// component that owns the process, and installs it as slog's default.
func NewLogger(cfg config.LogConfig, component string) *slog.Logger {
	logger := newLogger(cfg, component, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

func newLogger(cfg config.LogConfig, component string, w io.Writer) *slog.Logger {
	text := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: text,
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if text {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", "serviceregistry"),
		slog.String("component", component),
	)
}

// parseLevel accepts slog's level syntax ("warn", "DEBUG", "info+2").
// Anything else falls back to info; config validation reports it earlier.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
