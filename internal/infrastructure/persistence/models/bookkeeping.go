package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/bookkeeping"
	"github.com/shopspring/decimal"
)

// DailyLogModel is the persistence model for the DailyLog entity.
type DailyLogModel struct {
	OwnedModel
	LogDate           time.Time       `gorm:"type:date;not null;index"`
	OpeningStock      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ClosingStock      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SalesAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ExpenseAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IncomeAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NumberOfSales     int             `gorm:"not null;default:0"`
	NumberOfPurchases int             `gorm:"not null;default:0"`
	CashInHand        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BankBalance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DailyLogModel) TableName() string {
	return "daily_logs"
}

// ToDomain converts the persistence model to a domain DailyLog.
func (m *DailyLogModel) ToDomain() *bookkeeping.DailyLog {
	return &bookkeeping.DailyLog{
		OwnedEntity:       m.ToOwnedEntity(),
		LogDate:           m.LogDate,
		OpeningStock:      m.OpeningStock,
		ClosingStock:      m.ClosingStock,
		SalesAmount:       m.SalesAmount,
		ExpenseAmount:     m.ExpenseAmount,
		IncomeAmount:      m.IncomeAmount,
		NumberOfSales:     m.NumberOfSales,
		NumberOfPurchases: m.NumberOfPurchases,
		CashInHand:        m.CashInHand,
		BankBalance:       m.BankBalance,
		Notes:             m.Notes,
	}
}

// DailyLogModelFromDomain creates a new persistence model from a domain DailyLog.
func DailyLogModelFromDomain(l *bookkeeping.DailyLog) *DailyLogModel {
	m := &DailyLogModel{
		LogDate:           l.LogDate,
		OpeningStock:      l.OpeningStock,
		ClosingStock:      l.ClosingStock,
		SalesAmount:       l.SalesAmount,
		ExpenseAmount:     l.ExpenseAmount,
		IncomeAmount:      l.IncomeAmount,
		NumberOfSales:     l.NumberOfSales,
		NumberOfPurchases: l.NumberOfPurchases,
		CashInHand:        l.CashInHand,
		BankBalance:       l.BankBalance,
		Notes:             l.Notes,
	}
	m.FromDomainOwnedEntity(l.OwnedEntity)
	return m
}
