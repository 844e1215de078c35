package hr

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyPayment aggregates payroll paid on one date
type DailyPayment struct {
	Date          string
	Amount        decimal.Decimal
	Count         int
	EmployeeCount int
}

// MonthlyPayment aggregates paid payroll of one YYYY-MM payroll period
type MonthlyPayment struct {
	Month  string
	Amount decimal.Decimal
	Count  int
}

// PayrollAnalytics summarises payroll over a date range
type PayrollAnalytics struct {
	TotalPaid    decimal.Decimal
	TotalPending decimal.Decimal
	PaidCount    int
	PendingCount int
	ByDate       []DailyPayment
	ByMonth      []MonthlyPayment
}

// Analyze folds records into totals and per-date and per-month breakdowns.
// Months are the payroll period of each paid record, not its payment date.
// Only paid records with a payment date appear per date, bucketed in loc.
func Analyze(records []PayrollRecord, loc *time.Location) PayrollAnalytics {
	if loc == nil {
		loc = time.UTC
	}
	out := PayrollAnalytics{TotalPaid: decimal.Zero, TotalPending: decimal.Zero}

	type dayAcc struct {
		amount    decimal.Decimal
		count     int
		employees map[uuid.UUID]struct{}
	}
	days := make(map[string]*dayAcc)
	months := make(map[string]*MonthlyPayment)

	for _, r := range records {
		if !r.IsPaid() {
			out.TotalPending = out.TotalPending.Add(r.NetSalary)
			out.PendingCount++
			continue
		}
		out.TotalPaid = out.TotalPaid.Add(r.NetSalary)
		out.PaidCount++

		mk := fmt.Sprintf("%04d-%02d", r.Year, r.Month)
		m, ok := months[mk]
		if !ok {
			m = &MonthlyPayment{Month: mk, Amount: decimal.Zero}
			months[mk] = m
		}
		m.Amount = m.Amount.Add(r.NetSalary)
		m.Count++

		if r.PaymentDate == nil {
			continue
		}
		paid := r.PaymentDate.In(loc)

		dk := paid.Format("2006-01-02")
		acc, ok := days[dk]
		if !ok {
			acc = &dayAcc{amount: decimal.Zero, employees: make(map[uuid.UUID]struct{})}
			days[dk] = acc
		}
		acc.amount = acc.amount.Add(r.NetSalary)
		acc.count++
		acc.employees[r.EmployeeID] = struct{}{}
	}

	out.ByDate = make([]DailyPayment, 0, len(days))
	for k, acc := range days {
		out.ByDate = append(out.ByDate, DailyPayment{
			Date:          k,
			Amount:        acc.amount,
			Count:         acc.count,
			EmployeeCount: len(acc.employees),
		})
	}
	sort.Slice(out.ByDate, func(i, j int) bool { return out.ByDate[i].Date < out.ByDate[j].Date })

	out.ByMonth = make([]MonthlyPayment, 0, len(months))
	for _, m := range months {
		out.ByMonth = append(out.ByMonth, *m)
	}
	sort.Slice(out.ByMonth, func(i, j int) bool { return out.ByMonth[i].Month < out.ByMonth[j].Month })
	return out
}
