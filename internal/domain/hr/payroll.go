package hr

import (
	"fmt"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollStatus is the payment state of a payroll record
type PayrollStatus string

const (
	PayrollStatusPending PayrollStatus = "pending"
	PayrollStatusPaid    PayrollStatus = "paid"
)

// IsValid reports whether s is a known status
func (s PayrollStatus) IsValid() bool {
	return s == PayrollStatusPending || s == PayrollStatusPaid
}

// PayFrequency is how often a payroll record is issued
type PayFrequency string

const (
	PayFrequencyMonthly PayFrequency = "monthly"
	PayFrequencyWeekly  PayFrequency = "weekly"
	PayFrequencyDaily   PayFrequency = "daily"
)

var (
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.NewFromInt(4)
)

// BasicPay derives the basic amount of one pay period from a monthly salary
func BasicPay(monthlySalary decimal.Decimal, freq PayFrequency) (decimal.Decimal, error) {
	switch freq {
	case "", PayFrequencyMonthly:
		return monthlySalary, nil
	case PayFrequencyWeekly:
		return monthlySalary.Div(weeksPerMonth).Round(shared.AmountPlaces), nil
	case PayFrequencyDaily:
		return monthlySalary.Div(daysPerMonth).Round(shared.AmountPlaces), nil
	}
	return decimal.Zero, shared.NewDomainError("INVALID_FREQUENCY", "Frequency must be monthly, weekly or daily")
}

// PayrollRecord is one salary payment to an employee
type PayrollRecord struct {
	shared.OwnedEntity
	EmployeeID  uuid.UUID
	Month       int
	Year        int
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetSalary   decimal.Decimal
	PaymentDate *time.Time
	Status      PayrollStatus
	Notes       string
}

// NewPayrollRecord creates a pending record with net = basic + allowances - deductions
func NewPayrollRecord(userID, employeeID uuid.UUID, month, year int, basic, allowances, deductions decimal.Decimal) (*PayrollRecord, error) {
	if employeeID == uuid.Nil {
		return nil, shared.InvalidInput("Employee is required")
	}
	p := &PayrollRecord{
		OwnedEntity: shared.NewOwnedEntity(userID),
		EmployeeID:  employeeID,
		Status:      PayrollStatusPending,
	}
	if err := p.SetPeriod(month, year); err != nil {
		return nil, err
	}
	if err := p.SetAmounts(basic, allowances, deductions); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPeriod sets the month and year
func (p *PayrollRecord) SetPeriod(month, year int) error {
	if month < 1 || month > 12 {
		return shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	if year < 1900 || year > 9999 {
		return shared.NewDomainError("INVALID_YEAR", fmt.Sprintf("Invalid year: %d", year))
	}
	p.Month = month
	p.Year = year
	p.Touch()
	return nil
}

// SetAmounts sets the components and recomputes the net salary
func (p *PayrollRecord) SetAmounts(basic, allowances, deductions decimal.Decimal) error {
	if basic.IsNegative() || allowances.IsNegative() || deductions.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payroll amounts cannot be negative")
	}
	p.BasicSalary = basic
	p.Allowances = allowances
	p.Deductions = deductions
	p.NetSalary = basic.Add(allowances).Sub(deductions)
	p.Touch()
	return nil
}

// SetStatus sets the payment status. Marking paid without a date stamps at.
func (p *PayrollRecord) SetStatus(status PayrollStatus, at time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Payroll status must be pending or paid")
	}
	p.Status = status
	if status == PayrollStatusPaid && p.PaymentDate == nil {
		p.PaymentDate = &at
	}
	p.Touch()
	return nil
}

// IsPaid reports a paid record
func (p *PayrollRecord) IsPaid() bool { return p.Status == PayrollStatusPaid }
