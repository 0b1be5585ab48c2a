// Package logging builds the process-wide zap.Logger, wiring a level
// string and a service name into a production JSON encoder. This engine
// has no request-scoped trace IDs to thread through a context, so it
// skips that layer and exposes the *zap.Logger directly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger writing JSON to stderr at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func New(level string) *zap.Logger {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zap.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	log, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Building a zap.Config from known-good defaults cannot realistically
		// fail; fall back to a no-op logger rather than panic in a trading
		// process's startup path.
		return zap.NewNop()
	}
	return log.With(zap.String("service", "matchcore"))
}
