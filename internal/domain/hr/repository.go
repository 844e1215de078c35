package hr

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the hr repositories
const (
	FilterStatus       = "status"
	FilterDepartmentID = "department_id"
	FilterEmployeeID   = "employee_id"
	FilterMonth        = "month"
	FilterYear         = "year"
)

// EmployeeRepository persists employees.
// Search matches first and last name, full name, department name, email, code and position.
type EmployeeRepository interface {
	shared.OwnedRepository[Employee]
	ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error)
}

// DepartmentRepository persists departments with their members
type DepartmentRepository interface {
	shared.OwnedRepository[Department]
}

// PayrollRepository persists payroll records
type PayrollRepository interface {
	shared.OwnedRepository[PayrollRecord]
	// FindInRange returns records whose payment date, or creation time when
	// unpaid, falls within [from, to].
	FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]PayrollRecord, error)
}
