package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs so
// that packages can log from tests without setup.
var Logger = zap.NewNop()

// InitLogger replaces Logger with a JSON production logger at level, tagged
// with the service name.
func InitLogger(serviceName string, level zapcore.Level) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(zap.Fields(zap.String("service", serviceName)))
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger carrying the trace and span ids of
// the active span in ctx, or Logger itself when there is none.
//
// The context is attached as a zap.Any field as well: the otelzap bridge picks
// up any field whose value is a context.Context and emits the record with it,
// which fills the native TraceID/SpanID of the exported OTLP log record. The
// string ids keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
