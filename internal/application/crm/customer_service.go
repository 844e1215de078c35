package crm

import (
	"context"
	"strings"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// CustomerService handles customer use cases
type CustomerService struct {
	customerRepo crm.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, userID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := crm.NewCustomer(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := applyCustomerRequest(customer, req); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID returns a customer
func (s *CustomerService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Update replaces the customer's fields
func (s *CustomerService) Update(ctx context.Context, userID, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := applyCustomerRequest(customer, req); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

func applyCustomerRequest(customer *crm.Customer, req CustomerRequest) error {
	if err := customer.SetContact(req.Email, req.Phone, req.Company); err != nil {
		return err
	}
	customer.SetAddress(req.Address, req.City, req.State, req.PostalCode)
	customer.GSTNumber = strings.ToUpper(strings.TrimSpace(req.GSTNumber))
	customer.Notes = req.Notes
	return nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, userID, id)
}

// List returns a page of customers, newest first
func (s *CustomerService) List(ctx context.Context, userID uuid.UUID, filter CustomerListFilter) (*query.Page[CustomerResponse], error) {
	domainFilter := filter.ToFilter("created_at")

	customers, err := s.customerRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(customers, total, domainFilter, ToCustomerResponse), nil
}
