package hr

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultMemberRole is used when a member is added without a role
const DefaultMemberRole = "member"

// Department is an organisational unit
type Department struct {
	shared.OwnedEntity
	Name        string
	Description string
	ManagerID   *uuid.UUID
	Members     []DepartmentMember
}

// DepartmentMember links an employee to a department with a role
type DepartmentMember struct {
	ID           uuid.UUID
	DepartmentID uuid.UUID
	EmployeeID   uuid.UUID
	Role         string
}

// NewDepartment creates a department
func NewDepartment(userID uuid.UUID, name, description string) (*Department, error) {
	d := &Department{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := d.Update(name, description); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces name and description
func (d *Department) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Department name cannot be empty")
	}
	d.Name = name
	d.Description = strings.TrimSpace(description)
	d.Touch()
	return nil
}

// SetManager assigns or clears the manager
func (d *Department) SetManager(employeeID *uuid.UUID) {
	d.ManagerID = employeeID
	d.Touch()
}

// AddMember adds an employee, or updates the role of an existing member
func (d *Department) AddMember(employeeID uuid.UUID, role string) *DepartmentMember {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultMemberRole
	}
	for i := range d.Members {
		if d.Members[i].EmployeeID == employeeID {
			d.Members[i].Role = role
			d.Touch()
			return &d.Members[i]
		}
	}
	d.Members = append(d.Members, DepartmentMember{
		ID:           uuid.New(),
		DepartmentID: d.ID,
		EmployeeID:   employeeID,
		Role:         role,
	})
	d.Touch()
	return &d.Members[len(d.Members)-1]
}

// RemoveMember removes an employee from the department
func (d *Department) RemoveMember(employeeID uuid.UUID) error {
	for i := range d.Members {
		if d.Members[i].EmployeeID == employeeID {
			d.Members = append(d.Members[:i], d.Members[i+1:]...)
			d.Touch()
			return nil
		}
	}
	return shared.NotFound("Department member")
}
