package logger

import (
	"context"
	"log/slog"
	"time"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultSampleInitial    = 100
	defaultSampleThereafter = 10
)

func newZapHandler(cfg Config) slog.Handler {
	lvl := cfg.level()

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if cfg.AddSource {
		encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(cfg.Output),
		toZapLevel(lvl),
	)

	initial := cfg.SampleInitial
	if initial <= 0 {
		initial = defaultSampleInitial
	}
	thereafter := cfg.SampleThereafter
	if thereafter <= 0 {
		thereafter = defaultSampleThereafter
	}
	core = zapcore.NewSamplerWithOptions(core, time.Second, initial, thereafter)

	opts := []zap.Option{}
	if cfg.AddSource {
		// skip the slog-zap frame so the caller is the slog call site
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	z := zap.New(core, opts...)

	return slogzap.Option{
		Level:           lvl,
		Logger:          z,
		AttrFromContext: []func(ctx context.Context) []slog.Attr{AttrsFromCtx},
	}.NewZapHandler()
}

func toZapLevel(lvl slog.Level) zapcore.Level {
	switch {
	case lvl <= slog.LevelDebug:
		return zapcore.DebugLevel
	case lvl <= slog.LevelInfo:
		return zapcore.InfoLevel
	case lvl <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
