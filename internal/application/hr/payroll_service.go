package hr

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PayrollService handles payroll use cases
type PayrollService struct {
	payrollRepo  hr.PayrollRepository
	employeeRepo hr.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(payrollRepo hr.PayrollRepository, employeeRepo hr.EmployeeRepository) *PayrollService {
	return &PayrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		loc:          time.Local,
		now:          time.Now,
	}
}

// SetLocation sets the zone payment dates are bucketed in
func (s *PayrollService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

// Create issues a payroll record for one pay period
func (s *PayrollService) Create(ctx context.Context, userID uuid.UUID, req PayrollRequest) (*PayrollResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, userID, req.EmployeeID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.InvalidInput("Invalid employee")
		}
		return nil, err
	}

	monthly := employee.Salary
	if req.BasicSalary != nil {
		monthly = *req.BasicSalary
	}
	basic, err := hr.BasicPay(monthly, hr.PayFrequency(req.Frequency))
	if err != nil {
		return nil, err
	}

	record, err := hr.NewPayrollRecord(userID, employee.ID, req.Month, req.Year, basic, req.Allowances, req.Deductions)
	if err != nil {
		return nil, err
	}
	if err := s.applyPayment(record, req.Status, req.PaymentDate); err != nil {
		return nil, err
	}
	record.Notes = req.Notes
	if err := s.payrollRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(record)
	return &resp, nil
}

// GetByID returns a payroll record
func (s *PayrollService) GetByID(ctx context.Context, userID, id uuid.UUID) (*PayrollResponse, error) {
	record, err := s.payrollRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(record)
	return &resp, nil
}

// Update replaces period and amounts. A BasicSalary is taken as given for the
// period; Frequency applies only when it is omitted.
func (s *PayrollService) Update(ctx context.Context, userID, id uuid.UUID, req PayrollRequest) (*PayrollResponse, error) {
	record, err := s.payrollRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	basic := record.BasicSalary
	if req.BasicSalary != nil {
		basic = *req.BasicSalary
	}
	if err := record.SetPeriod(req.Month, req.Year); err != nil {
		return nil, err
	}
	if err := record.SetAmounts(basic, req.Allowances, req.Deductions); err != nil {
		return nil, err
	}
	if err := s.applyPayment(record, req.Status, req.PaymentDate); err != nil {
		return nil, err
	}
	record.Notes = req.Notes
	if err := s.payrollRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(record)
	return &resp, nil
}

// UpdateStatus marks a record paid or pending
func (s *PayrollService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req UpdatePayrollStatusRequest) (*PayrollResponse, error) {
	record, err := s.payrollRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPayment(record, req.Status, req.PaymentDate); err != nil {
		return nil, err
	}
	if err := s.payrollRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToPayrollResponse(record)
	return &resp, nil
}

func (s *PayrollService) applyPayment(record *hr.PayrollRecord, status string, paymentDate *time.Time) error {
	if paymentDate != nil {
		record.PaymentDate = paymentDate
	}
	if status == "" {
		return nil
	}
	return record.SetStatus(hr.PayrollStatus(status), s.now())
}

// Delete removes a payroll record
func (s *PayrollService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.payrollRepo.Delete(ctx, userID, id)
}

// List returns a page of payroll records, newest period first
func (s *PayrollService) List(ctx context.Context, userID uuid.UUID, filter PayrollListFilter) (*query.Page[PayrollResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.EmployeeID != nil {
		domainFilter.Filters[hr.FilterEmployeeID] = *filter.EmployeeID
	}
	if filter.Status != "" {
		domainFilter.Filters[hr.FilterStatus] = filter.Status
	}
	if filter.Month > 0 {
		domainFilter.Filters[hr.FilterMonth] = filter.Month
	}
	if filter.Year > 0 {
		domainFilter.Filters[hr.FilterYear] = filter.Year
	}

	records, err := s.payrollRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.payrollRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(records, total, domainFilter, ToPayrollResponse), nil
}

// Analytics summarises payroll between from and to. Missing bounds default to
// the twelve months ending today.
func (s *PayrollService) Analytics(ctx context.Context, userID uuid.UUID, req PayrollAnalyticsRequest) (*PayrollAnalyticsResponse, error) {
	now := s.now().In(s.loc)
	to := shared.EndOfDay(now)
	if req.To != nil {
		to = shared.EndOfDay(*req.To)
	}
	from := shared.StartOfDay(to.AddDate(-1, 0, 1))
	if req.From != nil {
		from = shared.StartOfDay(*req.From)
	}
	if from.After(to) {
		return nil, shared.InvalidInput("from must not be after to")
	}

	records, err := s.payrollRepo.FindInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	a := hr.Analyze(records, s.loc)

	resp := &PayrollAnalyticsResponse{
		From:         from,
		To:           to,
		TotalPaid:    a.TotalPaid,
		TotalPending: a.TotalPending,
		PaidCount:    a.PaidCount,
		PendingCount: a.PendingCount,
		ByDate:       make([]DailyPaymentResponse, 0, len(a.ByDate)),
		ByMonth:      make([]MonthlyPaymentResponse, 0, len(a.ByMonth)),
	}
	for _, d := range a.ByDate {
		resp.ByDate = append(resp.ByDate, DailyPaymentResponse{
			Date:          d.Date,
			Amount:        d.Amount,
			Count:         d.Count,
			EmployeeCount: d.EmployeeCount,
		})
	}
	for _, m := range a.ByMonth {
		resp.ByMonth = append(resp.ByMonth, MonthlyPaymentResponse{Month: m.Month, Amount: m.Amount, Count: m.Count})
	}
	return resp, nil
}
