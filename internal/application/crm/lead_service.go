// Package crm contains the lead, customer, deal and call use cases.
package crm

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/application/transaction"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/format"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// exportBatchSize is the page size used while streaming the CSV export
const exportBatchSize = 100

// LeadCSVHeader is the first row of the lead export
var LeadCSVHeader = []string{"Name", "Email", "Phone", "Company", "Source", "Status", "Interest", "Created"}

// LeadService handles lead use cases
type LeadService struct {
	leadRepo crm.LeadRepository
	txScope  transaction.Scope
	loc      *time.Location
	logger   *zap.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo crm.LeadRepository, txScope transaction.Scope, logger *zap.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		txScope:  txScope,
		loc:      time.Local,
		logger:   logger,
	}
}

// SetLocation sets the zone used for dates in exports
func (s *LeadService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.loc = loc
	}
}

// Create creates a new lead
func (s *LeadService) Create(ctx context.Context, userID uuid.UUID, req LeadRequest) (*LeadResponse, error) {
	lead, err := crm.NewLead(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := applyLeadRequest(lead, req); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// GetByID returns a lead
func (s *LeadService) GetByID(ctx context.Context, userID, id uuid.UUID) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

// Update replaces the lead's fields
func (s *LeadService) Update(ctx context.Context, userID, id uuid.UUID, req LeadRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := lead.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := applyLeadRequest(lead, req); err != nil {
		return nil, err
	}
	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	resp := ToLeadResponse(lead)
	return &resp, nil
}

func applyLeadRequest(lead *crm.Lead, req LeadRequest) error {
	if err := lead.SetContact(req.Email, req.Phone, req.Company); err != nil {
		return err
	}
	if err := lead.SetSource(crm.LeadSource(req.Source)); err != nil {
		return err
	}
	if req.Status != "" {
		if err := lead.SetStatus(crm.LeadStatus(req.Status)); err != nil {
			return err
		}
	}
	level := req.InterestLevel
	if level == 0 {
		level = crm.DefaultInterestLevel
	}
	if err := lead.SetInterestLevel(level); err != nil {
		return err
	}
	lead.SetNotes(req.Notes)
	return nil
}

// Delete removes a lead
func (s *LeadService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.leadRepo.Delete(ctx, userID, id)
}

// List returns a page of leads, newest first
func (s *LeadService) List(ctx context.Context, userID uuid.UUID, filter LeadListFilter) (*query.Page[LeadResponse], error) {
	domainFilter := leadFilter(filter)

	leads, err := s.leadRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.leadRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(leads, total, domainFilter, ToLeadResponse), nil
}

func leadFilter(filter LeadListFilter) shared.Filter {
	f := filter.ToFilter("created_at")
	if filter.Source != "" {
		f.Filters[crm.FilterSource] = filter.Source
	}
	if filter.Status != "" {
		f.Filters[crm.FilterStatus] = filter.Status
	}
	if filter.InterestLevel > 0 {
		f.Filters[crm.FilterInterestLevel] = filter.InterestLevel
	}
	return f
}

// ConvertToCustomer creates a customer from the lead and marks the lead qualified,
// both in one transaction.
func (s *LeadService) ConvertToCustomer(ctx context.Context, userID, leadID uuid.UUID) (*ConvertLeadResult, error) {
	var result ConvertLeadResult
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		lead, err := repos.Leads().FindByID(ctx, userID, leadID)
		if err != nil {
			return err
		}
		customer, err := lead.ConvertToCustomer()
		if err != nil {
			return err
		}
		if err := repos.Customers().Save(ctx, customer); err != nil {
			return err
		}
		if err := repos.Leads().Save(ctx, lead); err != nil {
			return err
		}
		result = ConvertLeadResult{
			Lead:     ToLeadResponse(lead),
			Customer: ToCustomerResponse(customer),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lead converted to customer",
		zap.String("lead_id", leadID.String()),
		zap.String("customer_id", result.Customer.ID.String()))
	return &result, nil
}

// ExportFilename returns the suggested download name for an export made at now
func ExportFilename(now time.Time) string {
	return "leads-" + format.FormatInputDate(now) + ".csv"
}

// ExportCSV writes every lead matching the filter as CSV. Paging fields of the
// filter are ignored.
func (s *LeadService) ExportCSV(ctx context.Context, userID uuid.UUID, filter LeadListFilter, w io.Writer) error {
	domainFilter := leadFilter(filter)
	domainFilter.PageSize = exportBatchSize

	cw := csv.NewWriter(w)
	if err := cw.Write(LeadCSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for page := 1; ; page++ {
		domainFilter.Page = page
		leads, err := s.leadRepo.FindAll(ctx, userID, domainFilter)
		if err != nil {
			return err
		}
		for i := range leads {
			l := &leads[i]
			record := []string{
				l.Name,
				l.Email,
				l.Phone,
				l.Company,
				string(l.Source),
				string(l.Status),
				strconv.Itoa(l.InterestLevel),
				format.FormatLocalDate(l.CreatedAt.In(s.loc)),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		if len(leads) < exportBatchSize {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}
