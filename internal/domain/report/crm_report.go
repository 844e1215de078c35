package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CRMSummary is the headline block of the analytics report
type CRMSummary struct {
	TotalLeads      int64           `json:"total_leads"`
	ConvertedLeads  int64           `json:"converted_leads"`
	TotalCustomers  int64           `json:"total_customers"`
	TotalDeals      int64           `json:"total_deals"`
	WonDeals        int64           `json:"won_deals"`
	LostDeals       int64           `json:"lost_deals"`
	ActiveDeals     int64           `json:"active_deals"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	CompletedOrders int64           `json:"completed_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ConversionRate  float64         `json:"conversion_rate"` // Percentage
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCalls      int64           `json:"total_calls"`
	CompletedCalls  int64           `json:"completed_calls"`
	TotalProducts   int64           `json:"total_products"`
}

// AverageDealValue is revenue per won deal, zero without wins
func (s CRMSummary) AverageDealValue() decimal.Decimal {
	if s.WonDeals == 0 {
		return decimal.Zero
	}
	return s.TotalRevenue.Div(decimal.NewFromInt(s.WonDeals))
}

// CallCompletionRate is the completed share of calls as a percentage
func (s CRMSummary) CallCompletionRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.CompletedCalls) / float64(s.TotalCalls) * 100
}

// NetProfit is daily-log income minus expenses
func (s CRMSummary) NetProfit() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}

// NamedCount is one bar of a breakdown chart
type NamedCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// CRMReport is the full analytics read model
type CRMReport struct {
	Period        Period       `json:"period"`
	GeneratedAt   time.Time    `json:"generated_at"`
	Since         time.Time    `json:"since"`
	Summary       CRMSummary   `json:"summary"`
	LeadsBySource []NamedCount `json:"leads_by_source"`
	DealsByStage  []NamedCount `json:"deals_by_stage"`
}

// ReportFilter scopes report queries to one user and a start instant
type ReportFilter struct {
	UserID uuid.UUID
	Since  time.Time
}

// LeadStats aggregates leads created in the window
type LeadStats struct {
	Total     int64
	Converted int64
	BySource  map[string]int64
}

// DealStats aggregates deals created in the window
type DealStats struct {
	Total   int64
	Won     int64
	Lost    int64
	Revenue decimal.Decimal
	ByStage map[string]int64
}

// OrderStats aggregates sales orders created in the window
type OrderStats struct {
	Completed int64
	Pending   int64
}

// CallStats aggregates calls created in the window
type CallStats struct {
	Total     int64
	Completed int64
}

// DailyLogTotals sums daily logs dated within the window
type DailyLogTotals struct {
	Sales    decimal.Decimal
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// CRMReportRepository defines the aggregate queries behind the analytics report.
// Each method is independent so callers may run them concurrently.
type CRMReportRepository interface {
	GetLeadStats(ctx context.Context, filter ReportFilter) (*LeadStats, error)
	CountCustomers(ctx context.Context, filter ReportFilter) (int64, error)
	GetDealStats(ctx context.Context, filter ReportFilter) (*DealStats, error)
	GetOrderStats(ctx context.Context, filter ReportFilter) (*OrderStats, error)
	GetCallStats(ctx context.Context, filter ReportFilter) (*CallStats, error)
	// CountProducts ignores Since; the catalogue is counted in full.
	CountProducts(ctx context.Context, filter ReportFilter) (int64, error)
	GetDailyLogTotals(ctx context.Context, filter ReportFilter) (*DailyLogTotals, error)
}

// ConversionRate is customers per lead as a percentage, capped at 100
func ConversionRate(customers, leads int64) float64 {
	if customers == 0 || leads == 0 {
		return 0
	}
	rate := float64(customers) / float64(leads) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

var upper = cases.Upper(language.Und)

// Label turns a stored enum value into a chart label: the first underscore
// becomes a space and the result is upper-cased.
func Label(name string) string {
	return upper.String(strings.Replace(name, "_", " ", 1))
}

// Breakdown converts raw counts into labelled bars, largest first
func Breakdown(counts map[string]int64) []NamedCount {
	out := make([]NamedCount, 0, len(counts))
	for name, v := range counts {
		out = append(out, NamedCount{Name: Label(name), Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Assemble builds the summary from the individual aggregates
func Assemble(leads LeadStats, customers int64, deals DealStats, orders OrderStats, calls CallStats, products int64, logs DailyLogTotals) CRMSummary {
	return CRMSummary{
		TotalLeads:      leads.Total,
		ConvertedLeads:  leads.Converted,
		TotalCustomers:  customers,
		TotalDeals:      deals.Total,
		WonDeals:        deals.Won,
		LostDeals:       deals.Lost,
		ActiveDeals:     deals.Total - deals.Won - deals.Lost,
		TotalRevenue:    deals.Revenue,
		CompletedOrders: orders.Completed,
		PendingOrders:   orders.Pending,
		ConversionRate:  ConversionRate(customers, leads.Total),
		TotalExpenses:   logs.Expenses,
		TotalIncome:     logs.Income,
		TotalSales:      logs.Sales,
		TotalCalls:      calls.Total,
		CompletedCalls:  calls.Completed,
		TotalProducts:   products,
	}
}
