package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerHonoursLevel(t *testing.T) {
	oldLogger := Logger
	t.Cleanup(func() { Logger = oldLogger })

	if err := InitLogger("calc-test", zapcore.WarnLevel); err != nil {
		t.Fatalf("initializing logger: %v", err)
	}

	if Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info level to be disabled")
	}
	if !Logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("expected warn level to be enabled")
	}
}

func TestLoggerWithTraceWithoutSpanReturnsLogger(t *testing.T) {
	oldLogger := Logger
	Logger = zap.NewNop()
	t.Cleanup(func() { Logger = oldLogger })

	if got := LoggerWithTrace(context.Background()); got != Logger {
		t.Fatal("expected the global logger when no span is active")
	}
}
