package bookkeeping

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/bookkeeping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseItemDTO is one itemised expense
type ExpenseItemDTO struct {
	Description string          `json:"description" binding:"max=200"`
	Amount      decimal.Decimal `json:"amount"`
}

// DailyLogRequest carries the daily log form
type DailyLogRequest struct {
	LogDate           time.Time        `json:"log_date" binding:"required"`
	OpeningStock      decimal.Decimal  `json:"opening_stock"`
	ClosingStock      decimal.Decimal  `json:"closing_stock"`
	SalesAmount       decimal.Decimal  `json:"sales_amount"`
	IncomeAmount      decimal.Decimal  `json:"income_amount"`
	NumberOfSales     int              `json:"number_of_sales" binding:"min=0"`
	NumberOfPurchases int              `json:"number_of_purchases" binding:"min=0"`
	CashInHand        decimal.Decimal  `json:"cash_in_hand"`
	BankBalance       decimal.Decimal  `json:"bank_balance"`
	Notes             string           `json:"notes" binding:"max=5000"`
	ExpenseItems      []ExpenseItemDTO `json:"expense_items" binding:"max=100,dive"`
}

// DailyLogResponse is a daily log with its notes split back into parts
type DailyLogResponse struct {
	ID                uuid.UUID        `json:"id"`
	LogDate           string           `json:"log_date"`
	OpeningStock      decimal.Decimal  `json:"opening_stock"`
	ClosingStock      decimal.Decimal  `json:"closing_stock"`
	SalesAmount       decimal.Decimal  `json:"sales_amount"`
	ExpenseAmount     decimal.Decimal  `json:"expense_amount"`
	IncomeAmount      decimal.Decimal  `json:"income_amount"`
	Profit            decimal.Decimal  `json:"profit"`
	NumberOfSales     int              `json:"number_of_sales"`
	NumberOfPurchases int              `json:"number_of_purchases"`
	CashInHand        decimal.Decimal  `json:"cash_in_hand"`
	BankBalance       decimal.Decimal  `json:"bank_balance"`
	Notes             string           `json:"notes"`
	ExpenseItems      []ExpenseItemDTO `json:"expense_items"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// DailyLogListFilter filters the daily log list; the date range applies to log_date
type DailyLogListFilter struct {
	query.List
}

// ToDailyLogResponse converts a domain DailyLog
func ToDailyLogResponse(l *bookkeeping.DailyLog) DailyLogResponse {
	notes, items := bookkeeping.ParseNotes(l.Notes)
	expenses := make([]ExpenseItemDTO, 0, len(items))
	for _, it := range items {
		expenses = append(expenses, ExpenseItemDTO{Description: it.Description, Amount: it.Amount})
	}
	return DailyLogResponse{
		ID:                l.ID,
		LogDate:           l.LogDate.Format("2006-01-02"),
		OpeningStock:      l.OpeningStock,
		ClosingStock:      l.ClosingStock,
		SalesAmount:       l.SalesAmount,
		ExpenseAmount:     l.ExpenseAmount,
		IncomeAmount:      l.IncomeAmount,
		Profit:            l.Profit(),
		NumberOfSales:     l.NumberOfSales,
		NumberOfPurchases: l.NumberOfPurchases,
		CashInHand:        l.CashInHand,
		BankBalance:       l.BankBalance,
		Notes:             notes,
		ExpenseItems:      expenses,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
