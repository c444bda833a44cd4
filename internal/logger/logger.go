package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the process-wide logger. Production gets JSON on stdout,
// anything else gets the color console encoder. LOG_LEVEL overrides the
// default level when set.
func Init(env string) {
	cfg := configFor(env)

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	l, err := cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1), zap.Fields(
		zap.String("service", "blaemart-be"),
	))
	if err != nil {
		panic(err)
	}
	log = l
}

func configFor(env string) zap.Config {
	if env != "production" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	return cfg
}

// L returns the global logger, initializing it lazily for callers that
// run before main wiring (tests, mostly).
func L() *zap.Logger {
	if log == nil {
		Init(os.Getenv("APP_ENV"))
	}
	return log
}

// Sync flushes buffered entries. Safe to call on an uninitialized logger.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
