package observability

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
)

// InitTelemetry starts OTLP tracing, metrics and log export when cfg.Enabled.
// The returned shutdown flushes every started provider; it is safe to call
// when telemetry is disabled.
func InitTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !cfg.Enabled {
		Logger.Debug("telemetry export disabled")
		return shutdown, nil
	}

	res, err := NewResource(ctx, cfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	traceShutdown, err := InitTracing(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := InitMetrics(ctx, res)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	shutdowns = append(shutdowns, metricShutdown)

	if cfg.ExportLogs {
		logShutdown, err := InitLogging(ctx, res, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("init logging: %w", err)
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	Logger.Info("telemetry export enabled",
		zap.String("service", cfg.ServiceName),
		zap.Bool("logs", cfg.ExportLogs),
	)
	return shutdown, nil
}
