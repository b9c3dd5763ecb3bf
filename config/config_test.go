package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/activities/pkg/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_ShippedConfig(t *testing.T) {
	t.Setenv("CONFIG_PATH", "config.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "activities-service", cfg.Logging.Service)
	assert.Empty(t, cfg.Activities.SeedFile)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.WS.PingInterval)
	assert.Equal(t, "dev", cfg.Logging.Env)
	assert.Equal(t, "std", cfg.Logging.Backend)
	assert.Equal(t, "v0.1.0", cfg.Logging.Version)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, `
http:
  addr: ":9000"
logging:
  level: info
`))
	t.Setenv("ACTIVITIES_HTTP_ADDR", ":7070")
	t.Setenv("ACTIVITIES_HTTP_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ACTIVITIES_LOG_LEVEL", "debug")
	t.Setenv("ACTIVITIES_LOG_BACKEND", "zap")
	t.Setenv("ACTIVITIES_SEED_FILE", "/etc/activities.yaml")
	t.Setenv("ACTIVITIES_WS_PING_INTERVAL", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/etc/activities.yaml", cfg.Activities.SeedFile)
	assert.Equal(t, 5*time.Second, cfg.WS.PingInterval)

	lc := cfg.LoggerConfig()
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, logger.BackendZap, lc.Backend)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.HTTP.Addr)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"missing explicit file": filepath.Join(t.TempDir(), "nope.yaml"),
		"bad yaml":              writeConfig(t, "http: [\n"),
		"bad backend":           writeConfig(t, "logging:\n  backend: syslog\n"),
		"bad level":             writeConfig(t, "logging:\n  level: loud\n"),
		"negative timeout":      writeConfig(t, "http:\n  readTimeout: -1s\n"),
		"bad duration":          writeConfig(t, "ws:\n  pingInterval: soon\n"),
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CONFIG_PATH", path)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "{}\n"))
	t.Setenv("ACTIVITIES_HTTP_READ_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
