package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, in := range []string{"day", "week", "month", "year", " WEEK "} {
		_, err := ParsePeriod(in)
		assert.NoError(t, err, in)
	}
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, p)

	_, err = ParsePeriod("quarter")
	assert.Error(t, err)
}

func TestPeriod_Start(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC), PeriodDay.Start(now))
	assert.Equal(t, time.Date(2025, 3, 24, 12, 0, 0, 0, time.UTC), PeriodWeek.Start(now))
	assert.Equal(t, time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC), PeriodMonth.Start(now))
	assert.Equal(t, time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC), PeriodYear.Start(now))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "SOCIAL MEDIA", Label("social_media"))
	assert.Equal(t, "CLOSED WON", Label("closed_won"))
	assert.Equal(t, "A B_C", Label("a_b_c"))
	assert.Equal(t, "WEBSITE", Label("website"))
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(0, 10))
	assert.Equal(t, 0.0, ConversionRate(5, 0))
	assert.Equal(t, 50.0, ConversionRate(5, 10))
	assert.Equal(t, 100.0, ConversionRate(30, 10))
}

func TestBreakdown(t *testing.T) {
	got := Breakdown(map[string]int64{"website": 2, "cold_call": 5, "email": 2})
	assert.Equal(t, []NamedCount{
		{Name: "COLD CALL", Value: 5},
		{Name: "EMAIL", Value: 2},
		{Name: "WEBSITE", Value: 2},
	}, got)
	assert.Empty(t, Breakdown(nil))
}

func TestAssemble(t *testing.T) {
	s := Assemble(
		LeadStats{Total: 10, Converted: 3},
		4,
		DealStats{Total: 6, Won: 2, Lost: 1, Revenue: decimal.NewFromInt(90000)},
		OrderStats{Completed: 1, Pending: 2},
		CallStats{Total: 8, Completed: 6},
		12,
		DailyLogTotals{Sales: decimal.NewFromInt(500), Income: decimal.NewFromInt(700), Expenses: decimal.NewFromInt(200)},
	)

	assert.Equal(t, int64(3), s.ActiveDeals)
	assert.Equal(t, 40.0, s.ConversionRate)
	assert.True(t, decimal.NewFromInt(45000).Equal(s.AverageDealValue()))
	assert.Equal(t, 75.0, s.CallCompletionRate())
	assert.True(t, decimal.NewFromInt(500).Equal(s.NetProfit()))
	assert.Equal(t, int64(12), s.TotalProducts)

	var empty CRMSummary
	assert.True(t, empty.AverageDealValue().IsZero())
	assert.Equal(t, 0.0, empty.CallCompletionRate())
}
