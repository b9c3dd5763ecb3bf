// Package logger configures the process-wide slog logger shared by the
// cwrk-planet services.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu  sync.RWMutex
	def *slog.Logger
)

// New builds a logger from cfg without touching the global default.
func New(cfg Config) *slog.Logger {
	cfg = withDefaults(cfg)

	var h slog.Handler
	switch cfg.Backend {
	case BackendZap:
		h = newZapHandler(cfg)
	default:
		h = newStdHandler(cfg)
	}

	return slog.New(h.WithAttrs(commonAttrs(cfg)))
}

// Init builds a logger and installs it as slog's default.
func Init(cfg Config) *slog.Logger {
	l := New(cfg)

	mu.Lock()
	def = l
	mu.Unlock()

	slog.SetDefault(l)
	return l
}

// L returns the logger installed by Init, initialising one with defaults if needed.
func L() *slog.Logger {
	mu.RLock()
	l := def
	mu.RUnlock()
	if l != nil {
		return l
	}

	return Init(Config{})
}

func withDefaults(cfg Config) Config {
	if cfg.Env == "" {
		cfg.Env = DetectEnv()
	}
	if cfg.Service == "" {
		cfg.Service = "app"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	cfg.InstanceID = ensureInstanceID(cfg.InstanceID)

	if cfg.Backend == "" {
		if cfg.Env == EnvDev {
			cfg.Backend = BackendStd
		} else {
			cfg.Backend = BackendZap
		}
	}
	return cfg
}
