// Package sales contains the quotation, sales order, stock approval and invoice use cases.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/application/transaction"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuotationService handles quotation use cases
type QuotationService struct {
	quotationRepo sales.QuotationRepository
	customerRepo  crm.CustomerRepository
	txScope       transaction.Scope
	logger        *zap.Logger
	now           func() time.Time
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotationRepo sales.QuotationRepository,
	customerRepo crm.CustomerRepository,
	txScope transaction.Scope,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		customerRepo:  customerRepo,
		txScope:       txScope,
		logger:        logger,
		now:           time.Now,
	}
}

// Create creates a draft quotation and prices its lines
func (s *QuotationService) Create(ctx context.Context, userID uuid.UUID, req QuotationRequest) (*QuotationResponse, error) {
	if err := ensureCustomer(ctx, s.customerRepo, userID, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.checkNumber(ctx, userID, req.QuotationNumber, nil); err != nil {
		return nil, err
	}

	date := s.now()
	if req.QuotationDate != nil {
		date = *req.QuotationDate
	}
	q, err := sales.NewQuotation(userID, req.CustomerID, req.QuotationNumber, date)
	if err != nil {
		return nil, err
	}
	if err := applyQuotationRequest(q, req); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, q); err != nil {
		return nil, err
	}

	resp := ToQuotationResponse(q)
	return &resp, nil
}

// GetByID returns a quotation with its lines
func (s *QuotationService) GetByID(ctx context.Context, userID, id uuid.UUID) (*QuotationResponse, error) {
	q, err := s.quotationRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Update replaces the header and every line
func (s *QuotationService) Update(ctx context.Context, userID, id uuid.UUID, req QuotationRequest) (*QuotationResponse, error) {
	q, err := s.quotationRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := ensureCustomer(ctx, s.customerRepo, userID, req.CustomerID); err != nil {
		return nil, err
	}
	if err := q.SetCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	if number := strings.TrimSpace(req.QuotationNumber); number != "" && number != q.QuotationNumber {
		if err := s.checkNumber(ctx, userID, number, &id); err != nil {
			return nil, err
		}
		q.QuotationNumber = number
	}
	if req.QuotationDate != nil {
		q.QuotationDate = *req.QuotationDate
	}
	if err := applyQuotationRequest(q, req); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, q); err != nil {
		return nil, err
	}

	resp := ToQuotationResponse(q)
	return &resp, nil
}

func applyQuotationRequest(q *sales.Quotation, req QuotationRequest) error {
	if req.Status != "" {
		if err := q.SetStatus(sales.QuotationStatus(req.Status)); err != nil {
			return err
		}
	}
	q.ValidUntil = req.ValidUntil
	q.Notes = req.Notes
	return q.ReplaceItems(ToLineInputs(req.Items), req.DiscountAmount)
}

// ReplaceItems saves the lines edited on the invoice view. Lines without their
// own rate take the quotation's header percents.
func (s *QuotationService) ReplaceItems(ctx context.Context, userID, id uuid.UUID, req ReplaceItemsRequest) (*QuotationResponse, error) {
	q, err := s.quotationRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	inputs := withHeaderRates(ToLineInputs(req.Items), q.Totals)
	if err := q.ReplaceItems(inputs, req.DiscountAmount); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// UpdateStatus sets the quotation status
func (s *QuotationService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req UpdateQuotationStatusRequest) (*QuotationResponse, error) {
	q, err := s.quotationRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := q.SetStatus(sales.QuotationStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuotationResponse(q)
	return &resp, nil
}

// Delete removes a quotation and its lines
func (s *QuotationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.quotationRepo.Delete(ctx, userID, id)
}

// List returns a page of quotations, newest first
func (s *QuotationService) List(ctx context.Context, userID uuid.UUID, filter QuotationListFilter) (*query.Page[QuotationResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Status != "" {
		domainFilter.Filters[sales.FilterStatus] = filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters[sales.FilterCustomerID] = *filter.CustomerID
	}

	quotations, err := s.quotationRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.quotationRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(quotations, total, domainFilter, ToQuotationResponse), nil
}

// ConvertToSalesOrder copies the quotation into a new draft sales order and marks
// the quotation accepted, in one transaction.
func (s *QuotationService) ConvertToSalesOrder(ctx context.Context, userID, id uuid.UUID) (*ConvertQuotationResult, error) {
	var result ConvertQuotationResult
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		q, err := repos.Quotations().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		now := s.now()
		order, err := q.ConvertToSalesOrder(shared.NewDocumentNumber(shared.SalesOrderPrefix, now), now)
		if err != nil {
			return err
		}
		if err := repos.SalesOrders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.Quotations().Save(ctx, q); err != nil {
			return err
		}
		result = ConvertQuotationResult{
			Quotation:  ToQuotationResponse(q),
			SalesOrder: ToSalesOrderResponse(order),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quotation converted to sales order",
		zap.String("quotation_id", id.String()),
		zap.String("order_number", result.SalesOrder.OrderNumber))
	return &result, nil
}

func (s *QuotationService) checkNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil
	}
	exists, err := s.quotationRepo.ExistsByNumber(ctx, userID, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Quotation number already exists")
	}
	return nil
}

func ensureCustomer(ctx context.Context, repo crm.CustomerRepository, userID, customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return sales.ErrInvalidCustomer
	}
	if _, err := repo.FindByID(ctx, userID, customerID); err != nil {
		if shared.IsNotFound(err) {
			return sales.ErrInvalidCustomer
		}
		return err
	}
	return nil
}

// withHeaderRates fills missing line percents from the document header. A
// document without priced lines keeps the 9/9 default.
func withHeaderRates(inputs []sales.LineInput, totals sales.Totals) []sales.LineInput {
	if totals.Subtotal.IsZero() {
		return inputs
	}
	cgst, sgst := totals.CGSTPercent, totals.SGSTPercent
	for i := range inputs {
		if inputs[i].CGSTPercent == nil {
			inputs[i].CGSTPercent = decimalPtr(cgst)
		}
		if inputs[i].SGSTPercent == nil {
			inputs[i].SGSTPercent = decimalPtr(sgst)
		}
	}
	return inputs
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
