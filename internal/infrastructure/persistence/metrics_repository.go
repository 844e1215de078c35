package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMetricsRepository reads the cross-account counts exported as gauges
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new GormMetricsRepository
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

type groupCount struct {
	Name  string
	Total int64
}

func (r *GormMetricsRepository) countBy(ctx context.Context, table, column string) (map[string]int64, error) {
	var rows []groupCount
	err := r.db.WithContext(ctx).Table(table).
		Select(column + " AS name, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, table)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Total
	}
	return out, nil
}

// CRMSnapshot implements telemetry.SnapshotProvider
func (r *GormMetricsRepository) CRMSnapshot(ctx context.Context) (telemetry.CRMSnapshot, error) {
	var snap telemetry.CRMSnapshot
	var err error

	if snap.LeadsByStatus, err = r.countBy(ctx, "leads", "status"); err != nil {
		return snap, err
	}
	if snap.DealsByStage, err = r.countBy(ctx, "deals", "stage"); err != nil {
		return snap, err
	}

	var pipeline decimal.Decimal
	if err := r.db.WithContext(ctx).Table("deals").
		Select("COALESCE(SUM(value), 0)").
		Where("stage NOT IN ?", []crm.DealStage{crm.DealStageClosedWon, crm.DealStageClosedLost}).
		Row().Scan(&pipeline); err != nil {
		return snap, translateError(err, "deals")
	}
	snap.OpenPipelineValue = pipeline.InexactFloat64()

	if err := r.db.WithContext(ctx).Table("products").
		Where("quantity_in_stock <= 0").
		Count(&snap.OutOfStock).Error; err != nil {
		return snap, translateError(err, "products")
	}
	if err := r.db.WithContext(ctx).Table("inventory_approvals").
		Where("status = ?", sales.ApprovalStatusPending).
		Count(&snap.PendingApprovals).Error; err != nil {
		return snap, translateError(err, "inventory_approvals")
	}
	return snap, nil
}

var _ telemetry.SnapshotProvider = (*GormMetricsRepository)(nil)
