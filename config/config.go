package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/cwrk-planet/activities/pkg/logger"
)

const defaultPath = "./config/config.yaml"

type HTTP struct {
	Addr            string        `yaml:"addr" env:"ACTIVITIES_HTTP_ADDR"`                        // ":8000"
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"ACTIVITIES_HTTP_READ_TIMEOUT"`         // "10s"
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"ACTIVITIES_HTTP_WRITE_TIMEOUT"`       // "15s"
	IdleTimeout     time.Duration `yaml:"idleTimeout" env:"ACTIVITIES_HTTP_IDLE_TIMEOUT"`         // "60s"
	RequestTimeout  time.Duration `yaml:"requestTimeout" env:"ACTIVITIES_HTTP_REQUEST_TIMEOUT"`   // "30s"
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"ACTIVITIES_HTTP_SHUTDOWN_TIMEOUT"` // "10s"
	AllowedOrigins  []string      `yaml:"allowedOrigins" env:"ACTIVITIES_HTTP_ALLOWED_ORIGINS" envSeparator:","`
}

type Logging struct {
	Env       string `yaml:"env" env:"ACTIVITIES_LOG_ENV"`              // dev|stage|prod
	Service   string `yaml:"service" env:"ACTIVITIES_LOG_SERVICE"`      // activities-service
	Version   string `yaml:"version" env:"ACTIVITIES_LOG_VERSION"`      // v0.1.0
	Backend   string `yaml:"backend" env:"ACTIVITIES_LOG_BACKEND"`      // std|zap
	Level     string `yaml:"level" env:"ACTIVITIES_LOG_LEVEL"`          // debug|info|warn|error
	AddSource bool   `yaml:"addSource" env:"ACTIVITIES_LOG_ADD_SOURCE"` // false|true
	Debug     bool   `yaml:"debug" env:"ACTIVITIES_LOG_DEBUG"`          // false|true
}

type Activities struct {
	// SeedFile replaces the built-in roster when set.
	SeedFile string `yaml:"seedFile" env:"ACTIVITIES_SEED_FILE"`
}

type WS struct {
	PingInterval time.Duration `yaml:"pingInterval" env:"ACTIVITIES_WS_PING_INTERVAL"` // "15s"
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Logging    Logging    `yaml:"logging"`
	Activities Activities `yaml:"activities"`
	WS         WS         `yaml:"ws"`
}

// Load reads CONFIG_PATH (or ./config/config.yaml when it exists), applies
// ACTIVITIES_* environment overrides and fills defaults.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = &Config{}
		} else {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads one YAML file without env overrides or defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	return &cfg, nil
}

// LoggerConfig maps the logging section; validate has already rejected bad levels.
func (c *Config) LoggerConfig() logger.Config {
	lvl, _ := logger.ParseLevel(c.Logging.Level)
	return logger.Config{
		Env:       logger.Env(c.Logging.Env),
		Service:   c.Logging.Service,
		Version:   c.Logging.Version,
		Backend:   logger.Backend(c.Logging.Backend),
		Level:     lvl,
		AddSource: c.Logging.AddSource,
		Debug:     c.Logging.Debug,
	}
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8000"
	}
	c.HTTP.ReadTimeout = durationOr(c.HTTP.ReadTimeout, 10*time.Second)
	c.HTTP.WriteTimeout = durationOr(c.HTTP.WriteTimeout, 15*time.Second)
	c.HTTP.IdleTimeout = durationOr(c.HTTP.IdleTimeout, 60*time.Second)
	c.HTTP.RequestTimeout = durationOr(c.HTTP.RequestTimeout, 30*time.Second)
	c.HTTP.ShutdownTimeout = durationOr(c.HTTP.ShutdownTimeout, 10*time.Second)
	c.WS.PingInterval = durationOr(c.WS.PingInterval, 15*time.Second)

	for name, d := range map[string]time.Duration{
		"http.readTimeout":     c.HTTP.ReadTimeout,
		"http.writeTimeout":    c.HTTP.WriteTimeout,
		"http.idleTimeout":     c.HTTP.IdleTimeout,
		"http.requestTimeout":  c.HTTP.RequestTimeout,
		"http.shutdownTimeout": c.HTTP.ShutdownTimeout,
		"ws.pingInterval":      c.WS.PingInterval,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if c.Logging.Service == "" {
		c.Logging.Service = "activities-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = string(logger.DetectEnv())
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = string(logger.BackendStd)
	}
	switch logger.Backend(c.Logging.Backend) {
	case logger.BackendStd, logger.BackendZap:
	default:
		return fmt.Errorf("logging.backend must be std or zap, got %q", c.Logging.Backend)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// durationOr returns def for zero; negative values are left for validate to reject.
func durationOr(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}
	return d
}
