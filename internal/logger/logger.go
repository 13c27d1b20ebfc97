// Package logger builds the service's zap loggers and carries a per-request
// logger through context.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger for the given config environment. prod
// emits JSON at info level; every other environment gets colored console
// output at debug level. A non-empty levelOverride (debug, info, warn,
// error) wins over the environment default.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	cfg := configFor(env)

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(levelOverride[0])); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelOverride[0], err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.Named("titledex"), nil
}

func configFor(env string) zap.Config {
	if env == "prod" {
		return zap.NewProductionConfig()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
