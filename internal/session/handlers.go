package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// Response is the JSON body returned for a session.
type Response struct {
	ID string `json:"id"`
	Snapshot
}

// PressRequest is the JSON body for POST /sessions/{id}/press.
type PressRequest struct {
	Keys []string `json:"keys"`
}

// Handler serves the session endpoints from a Store.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Create handles POST /sessions.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	span := trace.SpanFromContext(ctx)

	id, snap, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", err.Error(), err, statusFor(err), w)
		return
	}

	span.SetAttributes(attribute.String("session.id", id))
	logger.Info("session created", zap.String("session_id", id))

	w.Header().Set("Location", "/sessions/"+id)
	handlers.WriteJSON(w, http.StatusCreated, Response{ID: id, Snapshot: snap})
}

// Get handles GET /sessions/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	snap, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx), errorCounter, "session.get", err.Error(), err, statusFor(err), w)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, Response{ID: id, Snapshot: snap})
}

// Press handles POST /sessions/{id}/press. The keys are applied in order
// and the resulting state is returned; a calculation error is part of that
// state, not a request failure.
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	span := trace.SpanFromContext(ctx)
	id := chi.URLParam(r, "id")

	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.press", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "session.press", "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return
	}

	snap, err := h.store.Press(ctx, id, req.Keys)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.press", err.Error(), err, statusFor(err), w)
		return
	}

	keysCounter.Add(ctx, int64(len(req.Keys)))
	span.SetAttributes(
		attribute.String("session.id", id),
		attribute.Int("session.keys_count", len(req.Keys)),
	)
	logger.Debug("session keys pressed",
		zap.String("session_id", id),
		zap.Strings("keys", req.Keys),
		zap.String("display", snap.Display),
	)

	handlers.WriteJSON(w, http.StatusOK, Response{ID: id, Snapshot: snap})
}

// Delete handles DELETE /sessions/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, trace.SpanFromContext(ctx), observability.LoggerWithTrace(ctx), errorCounter, "session.delete", err.Error(), err, statusFor(err), w)
		return
	}

	observability.LoggerWithTrace(ctx).Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
