package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Deployments run with
// LOG_FORMAT=json so log shippers can parse the output; the text handler
// is for local development.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
