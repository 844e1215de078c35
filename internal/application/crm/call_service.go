package crm

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CallService handles call and meeting use cases
type CallService struct {
	callRepo     crm.CallRepository
	customerRepo crm.CustomerRepository
	leadRepo     crm.LeadRepository
}

// NewCallService creates a new CallService
func NewCallService(callRepo crm.CallRepository, customerRepo crm.CustomerRepository, leadRepo crm.LeadRepository) *CallService {
	return &CallService{
		callRepo:     callRepo,
		customerRepo: customerRepo,
		leadRepo:     leadRepo,
	}
}

// Create schedules a call or meeting
func (s *CallService) Create(ctx context.Context, userID uuid.UUID, req CallRequest) (*CallResponse, error) {
	call, err := crm.NewCall(userID, req.Subject, crm.CallType(req.CallType))
	if err != nil {
		return nil, err
	}
	if err := s.applyCallRequest(ctx, call, req); err != nil {
		return nil, err
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		return nil, err
	}
	resp := ToCallResponse(call)
	return &resp, nil
}

// GetByID returns a call
func (s *CallService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CallResponse, error) {
	call, err := s.callRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCallResponse(call)
	return &resp, nil
}

// Update replaces the call's fields
func (s *CallService) Update(ctx context.Context, userID, id uuid.UUID, req CallRequest) (*CallResponse, error) {
	call, err := s.callRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := call.SetSubject(req.Subject); err != nil {
		return nil, err
	}
	if err := call.SetType(crm.CallType(req.CallType)); err != nil {
		return nil, err
	}
	if err := s.applyCallRequest(ctx, call, req); err != nil {
		return nil, err
	}
	if err := s.callRepo.Save(ctx, call); err != nil {
		return nil, err
	}
	resp := ToCallResponse(call)
	return &resp, nil
}

func (s *CallService) applyCallRequest(ctx context.Context, call *crm.Call, req CallRequest) error {
	if err := ensureCustomer(ctx, s.customerRepo, call.UserID, req.CustomerID); err != nil {
		return err
	}
	if req.LeadID != nil {
		if _, err := s.leadRepo.FindByID(ctx, call.UserID, *req.LeadID); err != nil {
			if shared.IsNotFound(err) {
				return shared.InvalidInput("Invalid lead")
			}
			return err
		}
	}
	call.CustomerID = req.CustomerID
	call.LeadID = req.LeadID
	if req.Status != "" {
		if err := call.SetStatus(crm.CallStatus(req.Status)); err != nil {
			return err
		}
	}
	if err := call.SetDuration(req.DurationMinutes); err != nil {
		return err
	}
	call.ScheduledAt = req.ScheduledAt
	call.Notes = req.Notes
	return nil
}

// Delete removes a call
func (s *CallService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.callRepo.Delete(ctx, userID, id)
}

// List returns a page of calls, newest first
func (s *CallService) List(ctx context.Context, userID uuid.UUID, filter CallListFilter) (*query.Page[CallResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Status != "" {
		domainFilter.Filters[crm.FilterStatus] = filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters[crm.FilterCustomerID] = *filter.CustomerID
	}

	calls, err := s.callRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.callRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(calls, total, domainFilter, ToCallResponse), nil
}
