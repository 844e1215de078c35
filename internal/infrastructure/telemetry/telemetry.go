// Package telemetry wires OpenTelemetry tracing, metrics and log export plus
// Pyroscope profiling into the server.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 10 * time.Second

// Providers owns every telemetry pipeline started for the process. Pipelines
// that are disabled stay nil and fall back to the otel globals, which are no-op
// until set.
type Providers struct {
	config   config.TelemetryConfig
	logger   *zap.Logger
	tracer   *tracerProvider
	meter    *meterProvider
	logs     *loggerProvider
	profiler *profiler
}

// Setup starts the pipelines enabled in cfg. A nil error with telemetry
// disabled yields Providers whose accessors return no-op implementations.
func Setup(ctx context.Context, cfg config.TelemetryConfig, version string, logger *zap.Logger) (*Providers, error) {
	p := &Providers{config: cfg, logger: logger}
	if !cfg.Enabled {
		logger.Info("telemetry disabled")
		return p, nil
	}

	res, err := newResource(cfg.ServiceName, version)
	if err != nil {
		return nil, err
	}

	if p.tracer, err = newTracerProvider(ctx, cfg, res); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled {
		if p.meter, err = newMeterProvider(ctx, cfg, res, 0); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.LogsEnabled {
		if p.logs, err = newLoggerProvider(ctx, cfg, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
	}
	if cfg.ProfilingEnabled {
		if p.profiler, err = startProfiler(cfg, logger); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		// span profiles need the profiler running first
		p.tracer.enableSpanProfiles()
	}

	logger.Info("telemetry initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
		zap.Float64("sampling_ratio", cfg.SamplingRatio),
		zap.Bool("metrics", cfg.MetricsEnabled),
		zap.Bool("logs", cfg.LogsEnabled),
		zap.Bool("profiling", cfg.ProfilingEnabled),
	)
	return p, nil
}

// Tracer returns a named tracer
func (p *Providers) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return otel.GetTracerProvider().Tracer(name, opts...)
}

// Meter returns a named meter
func (p *Providers) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if p.meter == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return p.meter.provider.Meter(name, opts...)
}

// TracingEnabled reports whether spans are exported
func (p *Providers) TracingEnabled() bool {
	return p.tracer != nil
}

// DBTracingEnabled reports whether gorm queries should produce spans
func (p *Providers) DBTracingEnabled() bool {
	return p.tracer != nil && p.config.DBTraceEnabled
}

// BridgeLogger returns a logger that writes to base and, when log export is
// enabled, to the OTLP log pipeline.
func (p *Providers) BridgeLogger(base *zap.Logger, level zapcore.Level) *zap.Logger {
	if p.logs == nil {
		return base
	}
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, p.logs.core(p.config.ServiceName, level))
	}))
}

// Shutdown flushes and stops every started pipeline
func (p *Providers) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.profiler != nil {
		errs = append(errs, p.profiler.stop())
	}
	if p.logs != nil {
		errs = append(errs, p.logs.shutdown(ctx))
	}
	if p.meter != nil {
		errs = append(errs, p.meter.shutdown(ctx))
	}
	if p.tracer != nil {
		errs = append(errs, p.tracer.shutdown(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		p.logger.Error("telemetry shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

func newResource(serviceName, version string) (*resource.Resource, error) {
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
