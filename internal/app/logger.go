package app

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns the process-wide slog.Logger. The "pretty" text format
// is the LOG_FORMAT default for local work; deployments set LOG_FORMAT=json
// for machine-readable output. Development additionally lowers the level to
// Debug.
func NewLogger(cfg *Config) *slog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
