package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/makerlab-backend/internal/config"
)

// NewLogger builds the process logger and installs it as the slog default.
// The "json" format is meant for deployments; anything else falls back to
// text with source positions. An unparsable level means info.
func NewLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.Level)}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		opts.AddSource = true
		h = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(h).With(
		slog.String("service", "makerlab"),
		slog.String("version", Version),
	)
	slog.SetDefault(logger)
	return logger
}

// logLevel accepts the slog level names in any case, including offsets such
// as "warn+2".
func logLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
