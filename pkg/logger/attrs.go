package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// ensureInstanceID builds "<hostname>-<8 hex>" unless an id was configured.
func ensureInstanceID(v string) string {
	if v != "" {
		return v
	}

	hn, err := os.Hostname()
	if err != nil || hn == "" {
		hn = "unknown"
	}
	return hn + "-" + uuid.New().String()[:8]
}

func commonAttrs(cfg Config) []slog.Attr {
	return []slog.Attr{
		slog.String("service", cfg.Service),
		slog.String("env", string(cfg.Env)),
		slog.String("version", cfg.Version),
		slog.String("instance_id", cfg.InstanceID),
		slog.Time("started_at", time.Now()),
	}
}
