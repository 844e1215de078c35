package hr

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentService handles department use cases
type DepartmentService struct {
	departmentRepo hr.DepartmentRepository
	employeeRepo   hr.EmployeeRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(departmentRepo hr.DepartmentRepository, employeeRepo hr.EmployeeRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// Create creates a department
func (s *DepartmentService) Create(ctx context.Context, userID uuid.UUID, req DepartmentRequest) (*DepartmentResponse, error) {
	dept, err := hr.NewDepartment(userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.setManager(ctx, dept, req.ManagerID); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// GetByID returns a department with its members
func (s *DepartmentService) GetByID(ctx context.Context, userID, id uuid.UUID) (*DepartmentResponse, error) {
	dept, err := s.departmentRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// Update replaces name, description and manager
func (s *DepartmentService) Update(ctx context.Context, userID, id uuid.UUID, req DepartmentRequest) (*DepartmentResponse, error) {
	dept, err := s.departmentRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := dept.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.setManager(ctx, dept, req.ManagerID); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

func (s *DepartmentService) setManager(ctx context.Context, dept *hr.Department, managerID *uuid.UUID) error {
	if managerID != nil {
		if err := s.ensureEmployee(ctx, dept.UserID, *managerID); err != nil {
			return err
		}
	}
	dept.SetManager(managerID)
	return nil
}

func (s *DepartmentService) ensureEmployee(ctx context.Context, userID, employeeID uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, userID, employeeID); err != nil {
		if shared.IsNotFound(err) {
			return shared.InvalidInput("Invalid employee")
		}
		return err
	}
	return nil
}

// Delete removes a department and its memberships
func (s *DepartmentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.departmentRepo.Delete(ctx, userID, id)
}

// List returns departments ordered by name
func (s *DepartmentService) List(ctx context.Context, userID uuid.UUID, filter DepartmentListFilter) (*query.Page[DepartmentResponse], error) {
	domainFilter := filter.ToFilter("name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	depts, err := s.departmentRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.departmentRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(depts, total, domainFilter, ToDepartmentResponse), nil
}

// AddMember adds an employee to the department or updates their role
func (s *DepartmentService) AddMember(ctx context.Context, userID, id uuid.UUID, req DepartmentMemberRequest) (*DepartmentResponse, error) {
	dept, err := s.departmentRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmployee(ctx, userID, req.EmployeeID); err != nil {
		return nil, err
	}
	dept.AddMember(req.EmployeeID, req.Role)
	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// RemoveMember removes an employee from the department
func (s *DepartmentService) RemoveMember(ctx context.Context, userID, id, employeeID uuid.UUID) (*DepartmentResponse, error) {
	dept, err := s.departmentRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := dept.RemoveMember(employeeID); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Save(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}
