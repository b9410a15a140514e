package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// ---------------------------------------------------------------------------
// Binary operations
// ---------------------------------------------------------------------------

// BinaryHandler handles POST /calculator/{op} for one of the four operators.
func BinaryHandler(op Operator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handleBinaryOp(w, r, op)
	}
}

// handleBinaryOp decodes the operands, evaluates op and writes the result.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	span := trace.SpanFromContext(ctx)

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), decodeMessage(err), err, http.StatusBadRequest, w)
		return
	}

	result, err := Evaluate(ctx, op, req.A, req.B)
	if err != nil {
		writeCalcError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: op.String(),
		A:         req.A,
		B:         req.B,
		Result:    result,
		Kind:      result.Kind().String(),
		Display:   Format(result),
	})
}

// ---------------------------------------------------------------------------
// Chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It applies each step to a running
// total from left to right, without precedence. Every step gets its own
// child span under the chain span.
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
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", decodeMessage(err), err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", errors.New("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	// resolve every token before computing anything
	ops := make([]Operator, len(req.Steps))
	for i, step := range req.Steps {
		op, err := ParseOperator(step.Op)
		if err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, "chain", fmt.Sprintf("unknown operation %q at step %d", step.Op, i), err, http.StatusBadRequest, w)
			return
		}
		ops[i] = op
	}

	span.SetAttributes(
		attribute.String("chain.initial", req.Initial.String()),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		prev := running
		next, err := Evaluate(ctx, ops[i], running, step.Value)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("failed at step %d", i))

			logger.Warn("chain step failed",
				zap.Int("step", i),
				zap.String("operation", ops[i].String()),
				zap.Error(err),
				zap.String("request_id", requestID),
			)

			handlers.WriteKindError(w, statusFor(err), fmt.Sprintf("step %d: %v", i, err), ErrorKind(err))
			return
		}
		running = next

		logger.Debug("chain step completed",
			zap.Int("step", i),
			zap.String("operation", ops[i].String()),
			zap.Stringer("input", prev),
			zap.Stringer("value", step.Value),
			zap.Stringer("result", running),
		)

		results = append(results, ChainResult{
			Op:     ops[i].String(),
			Value:  step.Value,
			Result: running,
		})
	}

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", running.String()),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Stringer("initial", req.Initial),
		zap.Stringer("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
		Display: Format(running),
	})
}

// statusFor maps a calculator error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrDivisionByZero), errors.Is(err, ErrUndefinedResult):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeCalcError(w http.ResponseWriter, err error) {
	handlers.WriteKindError(w, statusFor(err), err.Error(), ErrorKind(err))
}

func decodeMessage(err error) string {
	if errors.Is(err, ErrInvalidOperand) {
		return "invalid numeric input"
	}
	return "invalid request body"
}
