package hr

import (
	"net/mail"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeStatus marks whether an employee is on the payroll
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a member of staff
type Employee struct {
	shared.OwnedEntity
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DepartmentID     *uuid.UUID
	Position         string
	HireDate         *time.Time
	Salary           decimal.Decimal
	Status           EmployeeStatus
	Address          string
	EmergencyContact string
}

// NewEmployee creates an active employee
func NewEmployee(userID uuid.UUID, code, firstName, lastName string) (*Employee, error) {
	e := &Employee{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Salary:      decimal.Zero,
		Status:      EmployeeStatusActive,
	}
	if err := e.SetCode(code); err != nil {
		return nil, err
	}
	if err := e.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	return e, nil
}

// SetCode sets the employee code
func (e *Employee) SetCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Employee code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Employee code cannot exceed 50 characters")
	}
	e.EmployeeCode = code
	e.Touch()
	return nil
}

// SetName sets first and last name
func (e *Employee) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	e.FirstName = firstName
	e.LastName = strings.TrimSpace(lastName)
	e.Touch()
	return nil
}

// SetContact replaces email and phone
func (e *Employee) SetContact(email, phone string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email address: "+email)
		}
	}
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	e.Touch()
	return nil
}

// SetSalary sets the monthly salary
func (e *Employee) SetSalary(salary decimal.Decimal) error {
	if salary.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}
	e.Salary = salary
	e.Touch()
	return nil
}

// SetStatus activates or deactivates the employee
func (e *Employee) SetStatus(status EmployeeStatus) error {
	switch status {
	case EmployeeStatusActive, EmployeeStatusInactive:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Employee status must be active or inactive")
	}
	e.Status = status
	e.Touch()
	return nil
}

// FullName joins first and last name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive reports an active employee
func (e *Employee) IsActive() bool { return e.Status == EmployeeStatusActive }
