package logger_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Anish-Chanda/textsearch-bench/internal/logger"
)

func TestNewLogger_ValidLevel(t *testing.T) {
	log := logger.New("debug")
	if log == nil {
		t.Fatal("Expected non-nil logger for valid level")
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug level to be enabled")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	log := logger.New("invalid-level")
	if log == nil {
		t.Fatal("Expected non-nil logger fallback for invalid level")
	}
	if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected fallback to info level")
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		if log := logger.ForFormat(format, "warn"); log == nil {
			t.Errorf("ForFormat(%q) returned nil", format)
		} else if log.Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("ForFormat(%q): info should be disabled at warn", format)
		}
	}
}
