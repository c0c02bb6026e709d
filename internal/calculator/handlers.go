package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 1 << 20
	maxKeys      = 1024
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// ---------------------------------------------------------------------------
// Handlers: binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, engine.OpAdd)
}

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, engine.OpSubtract)
}

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, engine.OpMultiply)
}

// Divide handles POST /calculator/divide. Division by zero is a 400.
func Divide(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, engine.OpDivide)
}

// handleBinaryOp evaluates a single a op b with the engine's evaluator and
// rounds the result the way the keypad does.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op engine.Op) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if !finite(req.A) || !finite(req.B) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := engine.Evaluate(req.A, op, req.B)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, evaluatorMessage(err), err, http.StatusBadRequest, w)
		return
	}
	result = engine.Round(result)

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
		Display:   engine.FormatNumber(result),
	})
}

// ---------------------------------------------------------------------------
// Handler: chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain: steps are applied to a running total
// strictly in order, with no operator precedence, and each step gets its own
// child span.
func Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", errors.New("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("chain.initial", req.Initial),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Float64("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.Float64("chain.step.input", running),
				attribute.Float64("chain.step.value", step.Value),
			),
		)

		stepStart := time.Now()
		prev := running

		next, err := applyStep(running, step)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			msg := fmt.Sprintf("failed at step %d: %s", i, evaluatorMessage(err))
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			observability.RecordError(ctx, span, logger, errorCounter, "chain", msg, err, http.StatusBadRequest, w)
			return
		}
		running = next

		attrs := metric.WithAttributes(attribute.String("operation", step.Op))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", prev),
			attribute.Float64("result", running),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", running))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Float64("input", prev),
			zap.Float64("value", step.Value),
			zap.Float64("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  step.Value,
			Result: running,
		})
	}

	resultGauge.Record(ctx, running, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", running),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.Float64("chain.result", running))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Float64("initial", req.Initial),
		zap.Float64("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
		Display: engine.FormatNumber(running),
	})
}

func applyStep(running float64, step ChainStep) (float64, error) {
	op, err := engine.ParseOp(step.Op)
	if err != nil {
		return 0, err
	}
	if !finite(step.Value) {
		return 0, fmt.Errorf("invalid numeric input %g", step.Value)
	}
	result, err := engine.Evaluate(running, op, step.Value)
	if err != nil {
		return 0, err
	}
	return engine.Round(result), nil
}

// ---------------------------------------------------------------------------
// Handler: key replay
// ---------------------------------------------------------------------------

// Keys handles POST /calculator/keys: the keys are dispatched one by one to a
// fresh engine and the final snapshot is returned. No engine state outlives
// the request. An engine error state is a normal response with is_error set.
func Keys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Keys) > maxKeys {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", "too many keys", fmt.Errorf("%d keys exceeds limit of %d", len(req.Keys), maxKeys), http.StatusBadRequest, w)
		return
	}

	events, err := engine.ParseKeys(req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys.count", len(events)))

	calc := engine.New()
	failed := false
	for i, ev := range events {
		calc.Dispatch(ev)
		keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", ev.Kind.String())))

		snap := calc.Snapshot()
		if snap.IsError && !failed {
			span.AddEvent("engine.error", trace.WithAttributes(
				attribute.Int("key.index", i),
				attribute.String("key", ev.String()),
			))
			errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "keys")))
		}
		failed = snap.IsError
	}

	snap := calc.Snapshot()
	outcome := "ok"
	if snap.IsError {
		outcome = "error"
	}
	replaysTotal.WithLabelValues(outcome).Inc()

	span.SetAttributes(
		attribute.String("calculator.display", snap.Display),
		attribute.Bool("calculator.error", snap.IsError),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("key sequence replayed",
		zap.Int("keys", len(events)),
		zap.String("display", snap.Display),
		zap.String("expression", snap.Expression),
		zap.Bool("is_error", snap.IsError),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		Keys:       len(events),
		Display:    snap.Display,
		Expression: snap.Expression,
		IsError:    snap.IsError,
		PendingOp:  snap.PendingOp.String(),
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// evaluatorMessage maps evaluator failures to the client-facing message.
func evaluatorMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrDivisionByZero):
		return "division by zero"
	case errors.Is(err, engine.ErrNonFiniteResult):
		return "result is not a finite number"
	case errors.Is(err, engine.ErrUnknownOperation):
		return "unknown operation"
	default:
		return err.Error()
	}
}
