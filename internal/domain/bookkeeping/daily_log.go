package bookkeeping

import (
	"context"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	expensesMarker   = "Expenses: "
	expenseSep       = "; "
	expenseAmountSep = ": ₹"
)

// ExpenseItem is one itemised expense of a day
type ExpenseItem struct {
	Description string
	Amount      decimal.Decimal
}

// DailyLog is the end-of-day business ledger of one user
type DailyLog struct {
	shared.OwnedEntity
	LogDate           time.Time
	OpeningStock      decimal.Decimal
	ClosingStock      decimal.Decimal
	SalesAmount       decimal.Decimal
	ExpenseAmount     decimal.Decimal
	IncomeAmount      decimal.Decimal
	NumberOfSales     int
	NumberOfPurchases int
	CashInHand        decimal.Decimal
	BankBalance       decimal.Decimal
	// Notes holds the stored text, including the expense trailer.
	Notes string
}

// NewDailyLog creates an empty log for the calendar day of logDate
func NewDailyLog(userID uuid.UUID, logDate time.Time) (*DailyLog, error) {
	if logDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Log date is required")
	}
	return &DailyLog{
		OwnedEntity:   shared.NewOwnedEntity(userID),
		LogDate:       shared.StartOfDay(logDate),
		OpeningStock:  decimal.Zero,
		ClosingStock:  decimal.Zero,
		SalesAmount:   decimal.Zero,
		ExpenseAmount: decimal.Zero,
		IncomeAmount:  decimal.Zero,
		CashInHand:    decimal.Zero,
		BankBalance:   decimal.Zero,
	}, nil
}

// SetLogDate moves the log to another day
func (l *DailyLog) SetLogDate(logDate time.Time) error {
	if logDate.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Log date is required")
	}
	l.LogDate = shared.StartOfDay(logDate)
	l.Touch()
	return nil
}

// SetCounts sets the number of sales and purchases
func (l *DailyLog) SetCounts(sales, purchases int) error {
	if sales < 0 || purchases < 0 {
		return shared.NewDomainError("INVALID_COUNT", "Counts cannot be negative")
	}
	l.NumberOfSales = sales
	l.NumberOfPurchases = purchases
	l.Touch()
	return nil
}

// SetNotesAndExpenses stores the user notes with the expense trailer appended
// and sets ExpenseAmount to the sum of the item amounts. Items without a
// description are skipped.
func (l *DailyLog) SetNotesAndExpenses(notes string, items []ExpenseItem) error {
	total := decimal.Zero
	kept := make([]ExpenseItem, 0, len(items))
	for _, it := range items {
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			continue
		}
		if it.Amount.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
		}
		total = total.Add(it.Amount)
		kept = append(kept, it)
	}
	l.ExpenseAmount = total
	l.Notes = EncodeNotes(strings.TrimSpace(notes), kept)
	l.Touch()
	return nil
}

// UserNotes returns the notes without the expense trailer
func (l *DailyLog) UserNotes() string {
	notes, _ := ParseNotes(l.Notes)
	return notes
}

// ExpenseItems parses the itemised expenses back out of the notes
func (l *DailyLog) ExpenseItems() []ExpenseItem {
	_, items := ParseNotes(l.Notes)
	return items
}

// EncodeNotes renders "notes\nExpenses: d1: ₹a1; d2: ₹a2". The trailer is
// omitted when there are no items.
func EncodeNotes(notes string, items []ExpenseItem) string {
	if len(items) == 0 {
		return notes
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Description + expenseAmountSep + it.Amount.String()
	}
	trailer := expensesMarker + strings.Join(parts, expenseSep)
	if notes == "" {
		return trailer
	}
	return notes + "\n" + trailer
}

// ParseNotes splits stored notes into user notes and expense items
func ParseNotes(stored string) (string, []ExpenseItem) {
	idx := strings.LastIndex(stored, expensesMarker)
	if idx < 0 || (idx > 0 && stored[idx-1] != '\n') {
		return stored, nil
	}
	notes := strings.TrimRight(stored[:idx], "\n")
	trailer := strings.TrimSpace(stored[idx+len(expensesMarker):])

	var items []ExpenseItem
	for _, part := range strings.Split(trailer, expenseSep) {
		desc, amt, _ := strings.Cut(part, expenseAmountSep)
		desc = strings.TrimSpace(desc)
		if desc == "" {
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(amt))
		if err != nil {
			amount = decimal.Zero
		}
		items = append(items, ExpenseItem{Description: desc, Amount: amount})
	}
	return notes, items
}

// Profit is income minus expenses for the day
func (l *DailyLog) Profit() decimal.Decimal {
	return l.IncomeAmount.Sub(l.ExpenseAmount)
}

// DailyLogRepository persists daily logs.
// FindAll orders by log_date desc, applies DateFrom/DateTo to log_date and
// matches Search against notes.
type DailyLogRepository interface {
	shared.OwnedRepository[DailyLog]
	FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyLog, error)
	ExistsByDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error)
}
