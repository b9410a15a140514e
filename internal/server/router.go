package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
)

// NewRouter wires the middleware chain, the calculator and session
// endpoints, /health and a Prometheus /metrics backed by its own registry.
func NewRouter(store *session.Store) (http.Handler, error) {
	reg, err := observability.NewRegistry(session.ActiveSessionsCollector(store))
	if err != nil {
		return nil, fmt.Errorf("prometheus registry: %w", err)
	}

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", observability.PrometheusHandler(reg))

	calculator.RegisterRoutes(r)
	session.RegisterRoutes(r, store)

	return r, nil
}
