package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// CRMSnapshot is the point-in-time state exported as gauges
type CRMSnapshot struct {
	LeadsByStatus     map[string]int64
	DealsByStage      map[string]int64
	OpenPipelineValue float64
	OutOfStock        int64
	PendingApprovals  int64
}

// SnapshotProvider reads a CRMSnapshot across all accounts
type SnapshotProvider interface {
	CRMSnapshot(ctx context.Context) (CRMSnapshot, error)
}

// CRMMetrics exports pipeline gauges read from a SnapshotProvider at
// collection time, plus background job outcomes.
type CRMMetrics struct {
	logger *zap.Logger

	jobRuns     *Counter
	jobDuration *Histogram
}

// NewCRMMetrics registers the CRM instruments on meter. provider may be nil,
// in which case no gauges are observed.
func NewCRMMetrics(meter metric.Meter, provider SnapshotProvider, logger *zap.Logger) (*CRMMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &CRMMetrics{logger: logger}

	var err error
	if m.jobRuns, err = NewCounter(meter, "crm.job.runs", "Background job executions", "{runs}"); err != nil {
		return nil, err
	}
	if m.jobDuration, err = NewHistogram(meter, "crm.job.duration", "Background job duration", "s", JobDurationBuckets...); err != nil {
		return nil, err
	}
	if provider != nil {
		if err := m.registerGauges(meter, provider); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *CRMMetrics) registerGauges(meter metric.Meter, provider SnapshotProvider) error {
	leads, err := meter.Int64ObservableGauge("crm.leads", metric.WithDescription("Leads by status"), metric.WithUnit("{leads}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge crm.leads: %w", err)
	}
	deals, err := meter.Int64ObservableGauge("crm.deals", metric.WithDescription("Deals by stage"), metric.WithUnit("{deals}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge crm.deals: %w", err)
	}
	pipeline, err := meter.Float64ObservableGauge("crm.pipeline.value", metric.WithDescription("Value of deals not yet closed"), metric.WithUnit("INR"))
	if err != nil {
		return fmt.Errorf("failed to create gauge crm.pipeline.value: %w", err)
	}
	outOfStock, err := meter.Int64ObservableGauge("crm.products.out_of_stock", metric.WithDescription("Products with no stock on hand"), metric.WithUnit("{products}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge crm.products.out_of_stock: %w", err)
	}
	approvals, err := meter.Int64ObservableGauge("crm.approvals.pending", metric.WithDescription("Inventory approvals awaiting a decision"), metric.WithUnit("{approvals}"))
	if err != nil {
		return fmt.Errorf("failed to create gauge crm.approvals.pending: %w", err)
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		snap, err := provider.CRMSnapshot(ctx)
		if err != nil {
			m.logger.Warn("crm metrics snapshot failed", zap.Error(err))
			return nil
		}
		for status, n := range snap.LeadsByStatus {
			o.ObserveInt64(leads, n, metric.WithAttributes(AttrLeadStatus.String(status)))
		}
		for stage, n := range snap.DealsByStage {
			o.ObserveInt64(deals, n, metric.WithAttributes(AttrDealStage.String(stage)))
		}
		o.ObserveFloat64(pipeline, snap.OpenPipelineValue)
		o.ObserveInt64(outOfStock, snap.OutOfStock)
		o.ObserveInt64(approvals, snap.PendingApprovals)
		return nil
	}, leads, deals, pipeline, outOfStock, approvals)
	if err != nil {
		return fmt.Errorf("register crm metrics callback: %w", err)
	}
	return nil
}

// JobFinished records one background job execution
func (m *CRMMetrics) JobFinished(ctx context.Context, name string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.jobRuns.Inc(ctx, AttrJob.String(name), AttrJobStatus.String(status))
	m.jobDuration.RecordDuration(ctx, d, AttrJob.String(name))
}
