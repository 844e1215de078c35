package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCRMReportRepository implements report.CRMReportRepository using GORM
type GormCRMReportRepository struct {
	db *gorm.DB
}

// NewGormCRMReportRepository creates a new GormCRMReportRepository
func NewGormCRMReportRepository(db *gorm.DB) *GormCRMReportRepository {
	return &GormCRMReportRepository{db: db}
}

func (r *GormCRMReportRepository) window(ctx context.Context, table string, filter report.ReportFilter) *gorm.DB {
	return r.db.WithContext(ctx).Table(table).
		Scopes(OwnerScope(filter.UserID)).
		Where("created_at >= ?", filter.Since)
}

// GetLeadStats counts leads created since the window start, by source
func (r *GormCRMReportRepository) GetLeadStats(ctx context.Context, filter report.ReportFilter) (*report.LeadStats, error) {
	type sourceResult struct {
		Source    string
		Total     int64
		Converted int64
	}

	var rows []sourceResult
	if err := r.window(ctx, "leads", filter).
		Select(`
			source,
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as converted
		`, crm.LeadStatusConverted).
		Group("source").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err, "Lead report")
	}

	stats := &report.LeadStats{BySource: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.Total += row.Total
		stats.Converted += row.Converted
		stats.BySource[row.Source] = row.Total
	}
	return stats, nil
}

// CountCustomers counts customers created since the window start
func (r *GormCRMReportRepository) CountCustomers(ctx context.Context, filter report.ReportFilter) (int64, error) {
	var n int64
	if err := r.window(ctx, "customers", filter).Count(&n).Error; err != nil {
		return 0, translateError(err, "Customer report")
	}
	return n, nil
}

// GetDealStats counts deals by stage and sums the value of won deals
func (r *GormCRMReportRepository) GetDealStats(ctx context.Context, filter report.ReportFilter) (*report.DealStats, error) {
	type stageResult struct {
		Stage string
		Total int64
		Value decimal.Decimal
	}

	var rows []stageResult
	if err := r.window(ctx, "deals", filter).
		Select("stage, COUNT(*) as total, COALESCE(SUM(value), 0) as value").
		Group("stage").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err, "Deal report")
	}

	stats := &report.DealStats{Revenue: decimal.Zero, ByStage: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.Total += row.Total
		stats.ByStage[row.Stage] = row.Total
		switch crm.DealStage(row.Stage) {
		case crm.DealStageClosedWon:
			stats.Won += row.Total
			stats.Revenue = stats.Revenue.Add(row.Value)
		case crm.DealStageClosedLost:
			stats.Lost += row.Total
		}
	}
	return stats, nil
}

// GetOrderStats counts delivered orders and orders still in progress
func (r *GormCRMReportRepository) GetOrderStats(ctx context.Context, filter report.ReportFilter) (*report.OrderStats, error) {
	var result struct {
		Completed int64
		Pending   int64
	}
	if err := r.window(ctx, "sales_orders", filter).
		Select(`
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN status NOT IN ? THEN 1 ELSE 0 END), 0) as pending
		`, sales.OrderStatusDelivered, []sales.OrderStatus{sales.OrderStatusDelivered, sales.OrderStatusCancelled}).
		Scan(&result).Error; err != nil {
		return nil, translateError(err, "Order report")
	}
	return &report.OrderStats{Completed: result.Completed, Pending: result.Pending}, nil
}

// GetCallStats counts calls and completed calls
func (r *GormCRMReportRepository) GetCallStats(ctx context.Context, filter report.ReportFilter) (*report.CallStats, error) {
	var result struct {
		Total     int64
		Completed int64
	}
	if err := r.window(ctx, "calls", filter).
		Select(`
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as completed
		`, crm.CallStatusCompleted).
		Scan(&result).Error; err != nil {
		return nil, translateError(err, "Call report")
	}
	return &report.CallStats{Total: result.Total, Completed: result.Completed}, nil
}

// CountProducts counts the whole catalogue of the user
func (r *GormCRMReportRepository) CountProducts(ctx context.Context, filter report.ReportFilter) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table("products").
		Scopes(OwnerScope(filter.UserID)).
		Count(&n).Error; err != nil {
		return 0, translateError(err, "Product report")
	}
	return n, nil
}

// GetDailyLogTotals sums the daily logs dated on or after the day the window
// starts. log_date carries no time of day, so the start is truncated too.
func (r *GormCRMReportRepository) GetDailyLogTotals(ctx context.Context, filter report.ReportFilter) (*report.DailyLogTotals, error) {
	var result struct {
		Sales    decimal.Decimal
		Income   decimal.Decimal
		Expenses decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Table("daily_logs").
		Scopes(OwnerScope(filter.UserID)).
		Where("log_date >= ?", shared.StartOfDay(filter.Since)).
		Select(`
			COALESCE(SUM(sales_amount), 0) as sales,
			COALESCE(SUM(income_amount), 0) as income,
			COALESCE(SUM(expense_amount), 0) as expenses
		`).
		Scan(&result).Error; err != nil {
		return nil, translateError(err, "Daily log report")
	}
	return &report.DailyLogTotals{Sales: result.Sales, Income: result.Income, Expenses: result.Expenses}, nil
}

var _ report.CRMReportRepository = (*GormCRMReportRepository)(nil)
