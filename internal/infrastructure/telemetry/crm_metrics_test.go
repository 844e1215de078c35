package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

type fakeSnapshots struct {
	snap CRMSnapshot
	err  error
}

func (f fakeSnapshots) CRMSnapshot(context.Context) (CRMSnapshot, error) {
	return f.snap, f.err
}

func TestCRMMetrics_ObservesSnapshot(t *testing.T) {
	mp, reader := newTestMeter(t)
	_, err := NewCRMMetrics(mp.Meter("crm"), fakeSnapshots{snap: CRMSnapshot{
		LeadsByStatus:     map[string]int64{"new": 3, "qualified": 1},
		DealsByStage:      map[string]int64{"proposal": 2},
		OpenPipelineValue: 125000.5,
		OutOfStock:        4,
		PendingApprovals:  1,
	}}, zap.NewNop())
	require.NoError(t, err)

	metrics := collect(t, reader)

	leads, ok := metrics["crm.leads"].(metricdata.Gauge[int64])
	require.True(t, ok)
	byStatus := map[string]int64{}
	for _, dp := range leads.DataPoints {
		status, _ := dp.Attributes.Value(AttrLeadStatus)
		byStatus[status.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"new": 3, "qualified": 1}, byStatus)

	pipeline, ok := metrics["crm.pipeline.value"].(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, pipeline.DataPoints, 1)
	assert.InDelta(t, 125000.5, pipeline.DataPoints[0].Value, 0.001)

	stock, ok := metrics["crm.products.out_of_stock"].(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Equal(t, int64(4), stock.DataPoints[0].Value)
}

func TestCRMMetrics_SnapshotErrorIsSkipped(t *testing.T) {
	mp, reader := newTestMeter(t)
	_, err := NewCRMMetrics(mp.Meter("crm"), fakeSnapshots{err: errors.New("db down")}, zap.NewNop())
	require.NoError(t, err)

	metrics := collect(t, reader)
	_, ok := metrics["crm.leads"]
	assert.False(t, ok)
}

func TestCRMMetrics_JobFinished(t *testing.T) {
	mp, reader := newTestMeter(t)
	m, err := NewCRMMetrics(mp.Meter("crm"), nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	m.JobFinished(ctx, "weekly_report", 2*time.Second, nil)
	m.JobFinished(ctx, "weekly_report", time.Second, errors.New("boom"))

	runs, ok := collect(t, reader)["crm.job.runs"].(metricdata.Sum[int64])
	require.True(t, ok)
	byStatus := map[string]int64{}
	for _, dp := range runs.DataPoints {
		status, _ := dp.Attributes.Value(AttrJobStatus)
		byStatus[status.AsString()] = dp.Value
	}
	assert.Equal(t, int64(1), byStatus["success"])
	assert.Equal(t, int64(1), byStatus["failed"])
}
