package logger

import (
	"log/slog"
)

func newStdHandler(cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     cfg.level(),
		AddSource: cfg.AddSource,
	}
	// text for local work, JSON everywhere else
	if cfg.Env == EnvDev {
		return traceHandler{slog.NewTextHandler(cfg.Output, opts)}
	}
	return traceHandler{slog.NewJSONHandler(cfg.Output, opts)}
}
