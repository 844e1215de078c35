package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/crmdesk/backend/internal/infrastructure/format"
)

var rule = strings.Repeat("=", 80)

// RenderText lays the report out as the downloadable text file. Timestamps are
// printed in loc.
func RenderText(r *report.CRMReport, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	s := r.Summary
	var b strings.Builder
	line := func(f string, args ...any) {
		fmt.Fprintf(&b, f, args...)
		b.WriteByte('\n')
	}

	line("CRM ANALYTICS REPORT")
	line("Generated: %s", format.FormatLocalDateTime(r.GeneratedAt.In(loc)))
	line("Period: %s", strings.ToUpper(string(r.Period)))
	line("%s", rule)
	line("")
	line("SUMMARY STATISTICS")
	line("%s", rule)
	line("Total Leads: %d", s.TotalLeads)
	line("Converted Leads: %d", s.ConvertedLeads)
	line("Total Customers: %d", s.TotalCustomers)
	line("Conversion Rate: %.2f%%", s.ConversionRate)
	line("")
	line("Total Deals: %d", s.TotalDeals)
	line("Won Deals: %d", s.WonDeals)
	line("Lost Deals: %d", s.LostDeals)
	line("Active Deals: %d", s.ActiveDeals)
	line("")
	line("Total Revenue: %s", format.FormatIndianCurrency(s.TotalRevenue))
	line("Average Deal Value: %s", format.FormatIndianCurrency(s.AverageDealValue()))
	line("")
	line("Sales Orders:")
	line("Completed Orders: %d", s.CompletedOrders)
	line("Pending Orders: %d", s.PendingOrders)
	line("")
	line("Calls & Meetings:")
	line("Total Calls: %d", s.TotalCalls)
	line("Completed Calls: %d", s.CompletedCalls)
	if s.TotalCalls > 0 {
		line("Completion Rate: %.2f%%", s.CallCompletionRate())
	} else {
		line("Completion Rate: 0%%")
	}
	line("")
	line("Products:")
	line("Total Products: %d", s.TotalProducts)
	line("")
	line("Financial Summary (from Daily Logs):")
	line("Total Sales: %s", format.FormatIndianCurrency(s.TotalSales))
	line("Total Income: %s", format.FormatIndianCurrency(s.TotalIncome))
	line("Total Expenses: %s", format.FormatIndianCurrency(s.TotalExpenses))
	line("Net Profit: %s", format.FormatIndianCurrency(s.NetProfit()))
	line("")
	section(&b, "LEADS BY SOURCE", r.LeadsBySource)
	line("")
	section(&b, "DEALS BY STAGE", r.DealsByStage)
	line("")
	line("%s", rule)
	line("End of Report")
	b.WriteString(rule)
	return b.String()
}

func section(b *strings.Builder, title string, rows []report.NamedCount) {
	b.WriteString(rule + "\n" + title + "\n" + rule + "\n")
	if len(rows) == 0 {
		b.WriteString("No data available\n")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(b, "%s: %d\n", row.Name, row.Value)
	}
}
