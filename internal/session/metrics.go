package session

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	keysCounter  metric.Int64Counter = noop.Int64Counter{}
	errorCounter metric.Int64Counter = noop.Int64Counter{}
)

// InitMetrics registers the session instruments on the global meter provider.
func InitMetrics() error {
	meter := otel.Meter("session")

	keys, err := meter.Int64Counter("session.keys.total",
		metric.WithDescription("Total number of keys pressed on HTTP sessions"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating keys counter: %w", err)
	}

	errs, err := meter.Int64Counter("session.errors.total",
		metric.WithDescription("Total number of failed session requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	keysCounter, errorCounter = keys, errs
	return nil
}

// ActiveSessionsCollector exposes the live session count of store as a
// Prometheus gauge.
func ActiveSessionsCollector(store *Store) prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "calculator",
		Name:      "active_sessions",
		Help:      "Number of live calculator sessions.",
	}, func() float64 {
		return float64(store.Len())
	})
}
