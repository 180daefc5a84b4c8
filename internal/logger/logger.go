package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console-encoded (colored) zap.Logger at the given level.
func New(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = parseLevel(level)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	log, _ := cfg.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return log
}

// NewJSON returns a JSON-encoded zap.Logger for machine-read output.
func NewJSON(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = parseLevel(level)
	log, _ := cfg.Build(zap.AddCaller())
	return log
}

// ForFormat picks New or NewJSON from a LOG_FORMAT value.
func ForFormat(format, level string) *zap.Logger {
	if format == "json" {
		return NewJSON(level)
	}
	return New(level)
}

func parseLevel(level string) zap.AtomicLevel {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return lvl
}
