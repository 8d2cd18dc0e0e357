package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds database tracing configuration
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables in db.statement
	SlowQueryThresh time.Duration
	DBName          string
}

// DBTracingPlugin registers otelgorm plus callbacks that flag slow and failed queries on the span
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates the plugin; a zero threshold means 200ms
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.DBName == "" {
		cfg.DBName = "postgresql"
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type queryStartKey struct{}

// Register installs the tracing callbacks on db
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := db.Callback()
	registrations := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("storefront_trace:before_create", markQueryStart) },
		func() error { return cb.Query().Before("gorm:query").Register("storefront_trace:before_query", markQueryStart) },
		func() error { return cb.Update().Before("gorm:update").Register("storefront_trace:before_update", markQueryStart) },
		func() error { return cb.Delete().Before("gorm:delete").Register("storefront_trace:before_delete", markQueryStart) },
		func() error { return cb.Row().Before("gorm:row").Register("storefront_trace:before_row", markQueryStart) },
		func() error { return cb.Raw().Before("gorm:raw").Register("storefront_trace:before_raw", markQueryStart) },
		func() error { return cb.Create().After("gorm:create").Register("storefront_trace:after_create", p.annotateSpan) },
		func() error { return cb.Query().After("gorm:query").Register("storefront_trace:after_query", p.annotateSpan) },
		func() error { return cb.Update().After("gorm:update").Register("storefront_trace:after_update", p.annotateSpan) },
		func() error { return cb.Delete().After("gorm:delete").Register("storefront_trace:after_delete", p.annotateSpan) },
		func() error { return cb.Row().After("gorm:row").Register("storefront_trace:after_row", p.annotateSpan) },
		func() error { return cb.Raw().After("gorm:raw").Register("storefront_trace:after_raw", p.annotateSpan) },
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
