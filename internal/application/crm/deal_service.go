package crm

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DealService handles deal use cases
type DealService struct {
	dealRepo     crm.DealRepository
	customerRepo crm.CustomerRepository
}

// NewDealService creates a new DealService
func NewDealService(dealRepo crm.DealRepository, customerRepo crm.CustomerRepository) *DealService {
	return &DealService{
		dealRepo:     dealRepo,
		customerRepo: customerRepo,
	}
}

// Create creates a new deal
func (s *DealService) Create(ctx context.Context, userID uuid.UUID, req DealRequest) (*DealResponse, error) {
	deal, err := crm.NewDeal(userID, req.Title, req.Value)
	if err != nil {
		return nil, err
	}
	if err := s.applyDealRequest(ctx, deal, req); err != nil {
		return nil, err
	}
	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}
	resp := ToDealResponse(deal)
	return &resp, nil
}

// GetByID returns a deal
func (s *DealService) GetByID(ctx context.Context, userID, id uuid.UUID) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDealResponse(deal)
	return &resp, nil
}

// Update replaces the deal's fields
func (s *DealService) Update(ctx context.Context, userID, id uuid.UUID, req DealRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := deal.SetTitle(req.Title); err != nil {
		return nil, err
	}
	if err := deal.SetValue(req.Value); err != nil {
		return nil, err
	}
	if err := s.applyDealRequest(ctx, deal, req); err != nil {
		return nil, err
	}
	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}
	resp := ToDealResponse(deal)
	return &resp, nil
}

func (s *DealService) applyDealRequest(ctx context.Context, deal *crm.Deal, req DealRequest) error {
	if err := ensureCustomer(ctx, s.customerRepo, deal.UserID, req.CustomerID); err != nil {
		return err
	}
	deal.CustomerID = req.CustomerID
	if req.Stage != "" {
		if err := deal.MoveTo(crm.DealStage(req.Stage)); err != nil {
			return err
		}
	}
	deal.ExpectedCloseDate = req.ExpectedCloseDate
	deal.Notes = req.Notes
	return nil
}

// Delete removes a deal
func (s *DealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.dealRepo.Delete(ctx, userID, id)
}

// List returns a page of deals, newest first
func (s *DealService) List(ctx context.Context, userID uuid.UUID, filter DealListFilter) (*query.Page[DealResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Stage != "" {
		domainFilter.Filters[crm.FilterStage] = filter.Stage
	}
	if filter.CustomerID != nil {
		domainFilter.Filters[crm.FilterCustomerID] = *filter.CustomerID
	}

	deals, err := s.dealRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.dealRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(deals, total, domainFilter, ToDealResponse), nil
}

// ensureCustomer checks an optional customer reference belongs to the user
func ensureCustomer(ctx context.Context, repo crm.CustomerRepository, userID uuid.UUID, customerID *uuid.UUID) error {
	if customerID == nil {
		return nil
	}
	if _, err := repo.FindByID(ctx, userID, *customerID); err != nil {
		if shared.IsNotFound(err) {
			return shared.InvalidInput("Invalid customer")
		}
		return err
	}
	return nil
}
