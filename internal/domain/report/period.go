package report

import (
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
)

// Period is the look-back window of a report
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultPeriod is used when no period is requested
const DefaultPeriod = PeriodMonth

// ParsePeriod validates a period name; empty means the default
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return DefaultPeriod, nil
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", shared.InvalidInput("Invalid period: " + s + " (expected day, week, month or year)")
}

// Start returns the beginning of the window ending at now
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}
