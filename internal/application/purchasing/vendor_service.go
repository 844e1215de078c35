// Package purchasing contains the vendor and purchase order use cases.
package purchasing

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/google/uuid"
)

// VendorService handles vendor use cases
type VendorService struct {
	vendorRepo purchasing.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo purchasing.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, userID uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := purchasing.NewVendor(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := vendor.SetContact(req.Email, req.Phone, req.Company, req.Address, req.GSTNumber); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetByID returns a vendor
func (s *VendorService) GetByID(ctx context.Context, userID, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Update replaces the vendor's fields
func (s *VendorService) Update(ctx context.Context, userID, id uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := vendor.SetContact(req.Email, req.Phone, req.Company, req.Address, req.GSTNumber); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Delete removes a vendor
func (s *VendorService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.vendorRepo.Delete(ctx, userID, id)
}

// List returns a page of vendors ordered by name
func (s *VendorService) List(ctx context.Context, userID uuid.UUID, filter VendorListFilter) (*query.Page[VendorResponse], error) {
	domainFilter := filter.ToFilter("name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}
	vendors, err := s.vendorRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.vendorRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(vendors, total, domainFilter, ToVendorResponse), nil
}
