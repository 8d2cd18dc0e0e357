package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RegisterDBPoolMetrics publishes connection pool statistics as observable gauges
func RegisterDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	connections, err := meter.Int64ObservableGauge("db.pool.connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db.pool.connections: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("db.pool.max_open",
		metric.WithDescription("Maximum open database connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db.pool.max_open: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db.pool.wait_count",
		metric.WithDescription("Total connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create db.pool.wait_count: %w", err)
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, connections, maxOpen, waits)
}
