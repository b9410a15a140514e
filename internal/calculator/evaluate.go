package calculator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/observability"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Evaluate applies op to a and b inside a child span, recording the
// operation metrics and a trace-correlated log line. Every front end
// (HTTP, CLI, keypad, MCP) computes through here.
func Evaluate(ctx context.Context, op Operator, a, b Number) (Number, error) {
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator."+op.String(),
		trace.WithAttributes(
			attribute.String("calculator.operation", op.String()),
			attribute.String("calculator.operand.a", a.String()),
			attribute.String("calculator.operand.b", b.String()),
		),
	)
	defer span.End()
	if requestID != "" {
		span.SetAttributes(attribute.String("request.id", requestID))
	}

	start := time.Now()
	result, err := Apply(op, a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		kind := ErrorKind(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errorCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op.String()),
			attribute.String("error.kind", kind),
		))
		logger.Warn("calculator operation failed",
			zap.String("operation", op.String()),
			zap.Stringer("a", a),
			zap.Stringer("b", b),
			zap.String("error_kind", kind),
			zap.Error(err),
		)
		return Number{}, err
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", op.String()),
		attribute.String("result.kind", result.Kind().String()),
	)
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result.Float64(), attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result.String()))
	span.SetStatus(codes.Ok, "")

	logger.Debug("calculator operation completed",
		zap.String("operation", op.String()),
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Stringer("result", result),
		zap.Float64("duration_ms", elapsed),
	)

	return result, nil
}
