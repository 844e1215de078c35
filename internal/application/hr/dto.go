package hr

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeRequest carries the employee form
type EmployeeRequest struct {
	EmployeeCode     string          `json:"employee_code" binding:"required,max=50"`
	FirstName        string          `json:"first_name" binding:"required,max=100"`
	LastName         string          `json:"last_name" binding:"max=100"`
	Email            string          `json:"email" binding:"omitempty,email,max=200"`
	Phone            string          `json:"phone" binding:"max=50"`
	DepartmentID     *uuid.UUID      `json:"department_id"`
	Position         string          `json:"position" binding:"max=100"`
	HireDate         *time.Time      `json:"hire_date"`
	Salary           decimal.Decimal `json:"salary"`
	Status           string          `json:"status" binding:"omitempty,oneof=active inactive"`
	Address          string          `json:"address" binding:"max=1000"`
	EmergencyContact string          `json:"emergency_contact" binding:"max=200"`
}

// EmployeeResponse is an employee returned to clients
type EmployeeResponse struct {
	ID               uuid.UUID       `json:"id"`
	EmployeeCode     string          `json:"employee_code"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	FullName         string          `json:"full_name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	DepartmentID     *uuid.UUID      `json:"department_id,omitempty"`
	Position         string          `json:"position"`
	HireDate         *time.Time      `json:"hire_date,omitempty"`
	Salary           decimal.Decimal `json:"salary"`
	Status           string          `json:"status"`
	Address          string          `json:"address"`
	EmergencyContact string          `json:"emergency_contact"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// EmployeeListFilter filters the employee list
type EmployeeListFilter struct {
	query.List
	Status       string     `form:"status" binding:"omitempty,oneof=active inactive"`
	DepartmentID *uuid.UUID `form:"department_id"`
}

// ToEmployeeResponse converts a domain Employee
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		Email:            e.Email,
		Phone:            e.Phone,
		DepartmentID:     e.DepartmentID,
		Position:         e.Position,
		HireDate:         e.HireDate,
		Salary:           e.Salary,
		Status:           string(e.Status),
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// DepartmentRequest carries the department form
type DepartmentRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	ManagerID   *uuid.UUID `json:"manager_id"`
}

// DepartmentMemberRequest adds an employee to a department
type DepartmentMemberRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" binding:"required"`
	Role       string    `json:"role" binding:"max=50"`
}

// DepartmentMemberResponse is one member of a department
type DepartmentMemberResponse struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Role       string    `json:"role"`
}

// DepartmentResponse is a department with its members
type DepartmentResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	ManagerID   *uuid.UUID                 `json:"manager_id,omitempty"`
	Members     []DepartmentMemberResponse `json:"members"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// DepartmentListFilter filters the department list
type DepartmentListFilter struct {
	query.List
}

// ToDepartmentResponse converts a domain Department
func ToDepartmentResponse(d *hr.Department) DepartmentResponse {
	members := make([]DepartmentMemberResponse, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, DepartmentMemberResponse{ID: m.ID, EmployeeID: m.EmployeeID, Role: m.Role})
	}
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		Members:     members,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// PayrollRequest carries the payroll form. BasicSalary is the monthly base;
// when omitted the employee's salary is used. Frequency scales it to the period.
type PayrollRequest struct {
	EmployeeID  uuid.UUID        `json:"employee_id" binding:"required"`
	Month       int              `json:"month" binding:"required,min=1,max=12"`
	Year        int              `json:"year" binding:"required,min=1900,max=9999"`
	Frequency   string           `json:"frequency" binding:"omitempty,oneof=monthly weekly daily"`
	BasicSalary *decimal.Decimal `json:"basic_salary"`
	Allowances  decimal.Decimal  `json:"allowances"`
	Deductions  decimal.Decimal  `json:"deductions"`
	PaymentDate *time.Time       `json:"payment_date"`
	Status      string           `json:"status" binding:"omitempty,oneof=pending paid"`
	Notes       string           `json:"notes" binding:"max=2000"`
}

// PayrollResponse is a payroll record returned to clients
type PayrollResponse struct {
	ID          uuid.UUID       `json:"id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PayrollListFilter filters the payroll list
type PayrollListFilter struct {
	query.List
	EmployeeID *uuid.UUID `form:"employee_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending paid"`
	Month      int        `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int        `form:"year" binding:"omitempty,min=1900,max=9999"`
}

// UpdatePayrollStatusRequest marks a record paid or pending
type UpdatePayrollStatusRequest struct {
	Status      string     `json:"status" binding:"required,oneof=pending paid"`
	PaymentDate *time.Time `json:"payment_date"`
}

// PayrollAnalyticsRequest bounds the analytics window; both dates are inclusive
type PayrollAnalyticsRequest struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// DailyPaymentResponse is the payroll paid on one date
type DailyPaymentResponse struct {
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Count         int             `json:"count"`
	EmployeeCount int             `json:"employee_count"`
}

// MonthlyPaymentResponse is the payroll paid in one month
type MonthlyPaymentResponse struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PayrollAnalyticsResponse summarises payroll over the window
type PayrollAnalyticsResponse struct {
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	TotalPaid    decimal.Decimal          `json:"total_paid"`
	TotalPending decimal.Decimal          `json:"total_pending"`
	PaidCount    int                      `json:"paid_count"`
	PendingCount int                      `json:"pending_count"`
	ByDate       []DailyPaymentResponse   `json:"by_date"`
	ByMonth      []MonthlyPaymentResponse `json:"by_month"`
}

// ToPayrollResponse converts a domain PayrollRecord
func ToPayrollResponse(p *hr.PayrollRecord) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Month:       p.Month,
		Year:        p.Year,
		BasicSalary: p.BasicSalary,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		NetSalary:   p.NetSalary,
		PaymentDate: p.PaymentDate,
		Status:      string(p.Status),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
