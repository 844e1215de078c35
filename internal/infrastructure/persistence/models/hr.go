package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee domain entity.
type EmployeeModel struct {
	OwnedModel
	EmployeeCode     string            `gorm:"type:varchar(50);not null;index"`
	FirstName        string            `gorm:"type:varchar(100);not null"`
	LastName         string            `gorm:"type:varchar(100)"`
	Email            string            `gorm:"type:varchar(200)"`
	Phone            string            `gorm:"type:varchar(50)"`
	DepartmentID     *uuid.UUID        `gorm:"type:uuid;index"`
	Position         string            `gorm:"type:varchar(100)"`
	HireDate         *time.Time        `gorm:"type:date"`
	Salary           decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status           hr.EmployeeStatus `gorm:"type:varchar(20);not null;index"`
	Address          string            `gorm:"type:text"`
	EmergencyContact string            `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		OwnedEntity:      m.ToOwnedEntity(),
		EmployeeCode:     m.EmployeeCode,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		DepartmentID:     m.DepartmentID,
		Position:         m.Position,
		HireDate:         m.HireDate,
		Salary:           m.Salary,
		Status:           m.Status,
		Address:          m.Address,
		EmergencyContact: m.EmergencyContact,
	}
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee entity.
func EmployeeModelFromDomain(e *hr.Employee) *EmployeeModel {
	m := &EmployeeModel{
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		DepartmentID:     e.DepartmentID,
		Position:         e.Position,
		HireDate:         e.HireDate,
		Salary:           e.Salary,
		Status:           e.Status,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
	}
	m.FromDomainOwnedEntity(e.OwnedEntity)
	return m
}

// DepartmentModel is the persistence model for the Department aggregate.
type DepartmentModel struct {
	OwnedModel
	Name        string                  `gorm:"type:varchar(100);not null"`
	Description string                  `gorm:"type:text"`
	ManagerID   *uuid.UUID              `gorm:"type:uuid"`
	Members     []DepartmentMemberModel `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department.
func (m *DepartmentModel) ToDomain() *hr.Department {
	d := &hr.Department{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		Description: m.Description,
		ManagerID:   m.ManagerID,
		Members:     make([]hr.DepartmentMember, len(m.Members)),
	}
	for i, mem := range m.Members {
		d.Members[i] = hr.DepartmentMember{
			ID:           mem.ID,
			DepartmentID: mem.DepartmentID,
			EmployeeID:   mem.EmployeeID,
			Role:         mem.Role,
		}
	}
	return d
}

// DepartmentModelFromDomain creates a new persistence model from a domain Department.
func DepartmentModelFromDomain(d *hr.Department) *DepartmentModel {
	m := &DepartmentModel{
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
		Members:     make([]DepartmentMemberModel, len(d.Members)),
	}
	m.FromDomainOwnedEntity(d.OwnedEntity)
	for i, mem := range d.Members {
		m.Members[i] = DepartmentMemberModel{
			ID:           mem.ID,
			DepartmentID: d.ID,
			EmployeeID:   mem.EmployeeID,
			Role:         mem.Role,
		}
	}
	return m
}

// DepartmentMemberModel links an employee to a department.
type DepartmentMemberModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_department_member,priority:1"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_department_member,priority:2"`
	Role         string    `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for GORM
func (DepartmentMemberModel) TableName() string {
	return "department_members"
}

// PayrollRecordModel is the persistence model for the PayrollRecord entity.
type PayrollRecordModel struct {
	OwnedModel
	EmployeeID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Month       int              `gorm:"not null"`
	Year        int              `gorm:"not null"`
	BasicSalary decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Allowances  decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Deductions  decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	NetSalary   decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentDate *time.Time       `gorm:"index"`
	Status      hr.PayrollStatus `gorm:"type:varchar(20);not null;index"`
	Notes       string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PayrollRecordModel) TableName() string {
	return "payroll"
}

// ToDomain converts the persistence model to a domain PayrollRecord.
func (m *PayrollRecordModel) ToDomain() *hr.PayrollRecord {
	return &hr.PayrollRecord{
		OwnedEntity: m.ToOwnedEntity(),
		EmployeeID:  m.EmployeeID,
		Month:       m.Month,
		Year:        m.Year,
		BasicSalary: m.BasicSalary,
		Allowances:  m.Allowances,
		Deductions:  m.Deductions,
		NetSalary:   m.NetSalary,
		PaymentDate: m.PaymentDate,
		Status:      m.Status,
		Notes:       m.Notes,
	}
}

// PayrollRecordModelFromDomain creates a new persistence model from a domain PayrollRecord.
func PayrollRecordModelFromDomain(p *hr.PayrollRecord) *PayrollRecordModel {
	m := &PayrollRecordModel{
		EmployeeID:  p.EmployeeID,
		Month:       p.Month,
		Year:        p.Year,
		BasicSalary: p.BasicSalary,
		Allowances:  p.Allowances,
		Deductions:  p.Deductions,
		NetSalary:   p.NetSalary,
		PaymentDate: p.PaymentDate,
		Status:      p.Status,
		Notes:       p.Notes,
	}
	m.FromDomainOwnedEntity(p.OwnedEntity)
	return m
}
