package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestInstrumentDB_RecordsQueries(t *testing.T) {
	db := openTestDB(t)
	mp, reader := newTestMeter(t)

	core, logs := observer.New(zapcore.WarnLevel)
	require.NoError(t, InstrumentDB(db, DBOptions{
		Tracing:            true,
		DBName:             "crm",
		SlowQueryThreshold: 1, // every statement is slow
		Meter:              mp.Meter("test"),
	}, zap.New(core)))

	require.NoError(t, db.Create(&widget{Name: "bolt"}).Error)
	var found []widget
	require.NoError(t, db.Find(&found).Error)
	require.Len(t, found, 1)
	err := db.First(&widget{}, 99).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	metrics := collect(t, reader)

	hist, ok := metrics["db.query.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	ops := map[string]uint64{}
	for _, dp := range hist.DataPoints {
		op, _ := dp.Attributes.Value(AttrDBOp)
		ops[op.AsString()] += dp.Count
	}
	assert.Equal(t, uint64(1), ops["create"])
	assert.Equal(t, uint64(2), ops["select"])

	_, hasErrors := metrics["db.query.errors"]
	assert.False(t, hasErrors, "record not found is not an error")

	pool, ok := metrics["db.pool.connections"].(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.NotEmpty(t, pool.DataPoints)

	assert.GreaterOrEqual(t, logs.FilterMessage("slow query").Len(), 3)
}

func TestInstrumentDB_WithoutMeter(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, InstrumentDB(db, DBOptions{}, nil))
	assert.NoError(t, db.Create(&widget{Name: "nut"}).Error)
}
