// Package hr contains the employee, department and payroll use cases.
package hr

import (
	"context"
	"strings"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeService handles employee use cases
type EmployeeService struct {
	employeeRepo   hr.EmployeeRepository
	departmentRepo hr.DepartmentRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository, departmentRepo hr.DepartmentRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, userID uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	if err := s.checkCode(ctx, userID, req.EmployeeCode, nil); err != nil {
		return nil, err
	}
	employee, err := hr.NewEmployee(userID, req.EmployeeCode, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if err := s.applyEmployeeRequest(ctx, employee, req); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// GetByID returns an employee
func (s *EmployeeService) GetByID(ctx context.Context, userID, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Update replaces the employee's fields
func (s *EmployeeService) Update(ctx context.Context, userID, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, userID, req.EmployeeCode, &id); err != nil {
		return nil, err
	}
	if err := employee.SetCode(req.EmployeeCode); err != nil {
		return nil, err
	}
	if err := employee.SetName(req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	if err := s.applyEmployeeRequest(ctx, employee, req); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

func (s *EmployeeService) applyEmployeeRequest(ctx context.Context, e *hr.Employee, req EmployeeRequest) error {
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.FindByID(ctx, e.UserID, *req.DepartmentID); err != nil {
			if shared.IsNotFound(err) {
				return shared.InvalidInput("Invalid department")
			}
			return err
		}
	}
	if err := e.SetContact(req.Email, req.Phone); err != nil {
		return err
	}
	if err := e.SetSalary(req.Salary); err != nil {
		return err
	}
	if req.Status != "" {
		if err := e.SetStatus(hr.EmployeeStatus(req.Status)); err != nil {
			return err
		}
	}
	e.DepartmentID = req.DepartmentID
	e.Position = strings.TrimSpace(req.Position)
	e.HireDate = req.HireDate
	e.Address = strings.TrimSpace(req.Address)
	e.EmergencyContact = strings.TrimSpace(req.EmergencyContact)
	return nil
}

func (s *EmployeeService) checkCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) error {
	exists, err := s.employeeRepo.ExistsByCode(ctx, userID, strings.ToUpper(strings.TrimSpace(code)), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Employee code already exists")
	}
	return nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.employeeRepo.Delete(ctx, userID, id)
}

// List returns a page of employees, newest first
func (s *EmployeeService) List(ctx context.Context, userID uuid.UUID, filter EmployeeListFilter) (*query.Page[EmployeeResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Status != "" {
		domainFilter.Filters[hr.FilterStatus] = filter.Status
	}
	if filter.DepartmentID != nil {
		domainFilter.Filters[hr.FilterDepartmentID] = *filter.DepartmentID
	}

	employees, err := s.employeeRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.employeeRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(employees, total, domainFilter, ToEmployeeResponse), nil
}
