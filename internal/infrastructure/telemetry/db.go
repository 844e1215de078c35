package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	startTimeKey     = "telemetry:start"
)

// DBOptions controls InstrumentDB
type DBOptions struct {
	// Tracing registers otelgorm so every statement becomes a span
	Tracing bool
	// DBName is reported as db.name on spans
	DBName string
	// IncludeVariables keeps bound parameters in span statements
	IncludeVariables bool
	// SlowQueryThreshold logs statements slower than this; zero means 200ms
	SlowQueryThreshold time.Duration
	// Meter records query durations and pool state; nil disables metrics
	Meter metric.Meter
}

// dbInstrumentation holds the instruments shared by the gorm callbacks
type dbInstrumentation struct {
	opts     DBOptions
	logger   *zap.Logger
	duration *Histogram
	errors   *Counter
}

// InstrumentDB attaches tracing, query metrics, pool gauges and slow query
// logging to db.
func InstrumentDB(db *gorm.DB, opts DBOptions, logger *zap.Logger) error {
	if opts.SlowQueryThreshold <= 0 {
		opts.SlowQueryThreshold = defaultSlowQuery
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Tracing {
		tracingOpts := []otelgorm.Option{otelgorm.WithDBName(opts.DBName)}
		if !opts.IncludeVariables {
			tracingOpts = append(tracingOpts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(tracingOpts...)); err != nil {
			return fmt.Errorf("register otelgorm: %w", err)
		}
	}

	inst := &dbInstrumentation{opts: opts, logger: logger}
	if opts.Meter != nil {
		var err error
		inst.duration, err = NewHistogram(opts.Meter, "db.query.duration", "Duration of database statements", "s", DBDurationBuckets...)
		if err != nil {
			return err
		}
		inst.errors, err = NewCounter(opts.Meter, "db.query.errors", "Database statements that returned an error", "{errors}")
		if err != nil {
			return err
		}
		if err := registerPoolGauge(db, opts.Meter); err != nil {
			return err
		}
	}
	return inst.register(db)
}

func (i *dbInstrumentation) register(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op     string
		before func(string) error
		after  func(string) error
	}{
		{"create", func(n string) error { return cb.Create().Before("gorm:create").Register(n, i.before) },
			func(n string) error { return cb.Create().After("gorm:create").Register(n, i.after("create")) }},
		{"query", func(n string) error { return cb.Query().Before("gorm:query").Register(n, i.before) },
			func(n string) error { return cb.Query().After("gorm:query").Register(n, i.after("select")) }},
		{"update", func(n string) error { return cb.Update().Before("gorm:update").Register(n, i.before) },
			func(n string) error { return cb.Update().After("gorm:update").Register(n, i.after("update")) }},
		{"delete", func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, i.before) },
			func(n string) error { return cb.Delete().After("gorm:delete").Register(n, i.after("delete")) }},
		{"row", func(n string) error { return cb.Row().Before("gorm:row").Register(n, i.before) },
			func(n string) error { return cb.Row().After("gorm:row").Register(n, i.after("row")) }},
		{"raw", func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, i.before) },
			func(n string) error { return cb.Raw().After("gorm:raw").Register(n, i.after("raw")) }},
	}
	for _, h := range hooks {
		if err := h.before("telemetry:before_" + h.op); err != nil {
			return fmt.Errorf("register %s callback: %w", h.op, err)
		}
		if err := h.after("telemetry:after_" + h.op); err != nil {
			return fmt.Errorf("register %s callback: %w", h.op, err)
		}
	}
	return nil
}

func (i *dbInstrumentation) before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func (i *dbInstrumentation) after(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		table := db.Statement.Table
		if i.duration != nil {
			i.duration.RecordDuration(ctx, elapsed, AttrDBOp.String(op), AttrDBTable.String(table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) && i.errors != nil {
			i.errors.Inc(ctx, AttrDBOp.String(op), AttrDBTable.String(table))
		}
		if elapsed >= i.opts.SlowQueryThreshold {
			i.logger.Warn("slow query",
				zap.String("operation", op),
				zap.String("table", table),
				zap.Duration("duration", elapsed),
				zap.Int64("rows", db.Statement.RowsAffected),
				zap.String("trace_id", TraceID(ctx)),
			)
		}
	}
}

// registerPoolGauge observes database/sql pool statistics on every collection
func registerPoolGauge(db *gorm.DB, meter metric.Meter) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	conns, err := meter.Int64ObservableGauge("db.pool.connections",
		metric.WithDescription("Database connections by state"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge db.pool.connections: %w", err)
	}
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
		return nil
	}, conns)
	if err != nil {
		return fmt.Errorf("register pool callback: %w", err)
	}
	return nil
}
