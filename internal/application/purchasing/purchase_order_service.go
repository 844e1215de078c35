package purchasing

import (
	"context"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/application/transaction"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order use cases
type PurchaseOrderService struct {
	poRepo     purchasing.PurchaseOrderRepository
	vendorRepo purchasing.VendorRepository
	txScope    transaction.Scope
	logger     *zap.Logger
	now        func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	poRepo purchasing.PurchaseOrderRepository,
	vendorRepo purchasing.VendorRepository,
	txScope transaction.Scope,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:     poRepo,
		vendorRepo: vendorRepo,
		txScope:    txScope,
		logger:     logger,
		now:        time.Now,
	}
}

// Create creates a draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, userID uuid.UUID, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if err := s.ensureVendor(ctx, userID, req.VendorID); err != nil {
		return nil, err
	}
	if err := s.checkNumber(ctx, userID, req.PONumber, nil); err != nil {
		return nil, err
	}

	date := s.now()
	if req.OrderDate != nil {
		date = *req.OrderDate
	}
	po, err := purchasing.NewPurchaseOrder(userID, req.VendorID, req.PONumber, date)
	if err != nil {
		return nil, err
	}
	po.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	po.Notes = req.Notes
	if err := po.ReplaceItems(toItemInputs(req.Items), req.DiscountAmount); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// GetByID returns a purchase order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, userID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// Update replaces header and lines of an open purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, userID, id uuid.UUID, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureVendor(ctx, userID, req.VendorID); err != nil {
		return nil, err
	}
	if err := po.SetVendor(req.VendorID); err != nil {
		return nil, err
	}
	if number := strings.TrimSpace(req.PONumber); number != "" && number != po.PONumber {
		if err := s.checkNumber(ctx, userID, number, &id); err != nil {
			return nil, err
		}
		po.PONumber = number
	}
	if req.OrderDate != nil {
		po.OrderDate = *req.OrderDate
	}
	po.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	po.Notes = req.Notes
	if err := po.ReplaceItems(toItemInputs(req.Items), req.DiscountAmount); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// UpdateStatus sets the status; received goes through Receive so stock is added
func (s *PurchaseOrderService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req UpdatePOStatusRequest) (*PurchaseOrderResponse, error) {
	if purchasing.POStatus(req.Status) == purchasing.POStatusReceived {
		return s.Receive(ctx, userID, id)
	}
	po, err := s.poRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := po.SetStatus(purchasing.POStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// Receive marks the order received and adds each product line's quantity to
// stock, in one transaction.
func (s *PurchaseOrderService) Receive(ctx context.Context, userID, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var resp PurchaseOrderResponse
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		po, err := repos.PurchaseOrders().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := po.Receive(); err != nil {
			return err
		}
		for productID, qty := range po.StockReceipts() {
			product, err := repos.Products().FindByID(ctx, userID, productID)
			if err != nil {
				if shared.IsNotFound(err) {
					continue
				}
				return err
			}
			product.AddStock(qty)
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}
		if err := repos.PurchaseOrders().Save(ctx, po); err != nil {
			return err
		}
		resp = ToPurchaseOrderResponse(po)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase order received",
		zap.String("po_id", id.String()),
		zap.String("po_number", resp.PONumber))
	return &resp, nil
}

// Delete removes a purchase order and its lines
func (s *PurchaseOrderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.poRepo.Delete(ctx, userID, id)
}

// List returns a page of purchase orders, newest first
func (s *PurchaseOrderService) List(ctx context.Context, userID uuid.UUID, filter PurchaseOrderListFilter) (*query.Page[PurchaseOrderResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Status != "" {
		domainFilter.Filters[purchasing.FilterStatus] = filter.Status
	}
	if filter.VendorID != nil {
		domainFilter.Filters[purchasing.FilterVendorID] = *filter.VendorID
	}

	orders, err := s.poRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.poRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(orders, total, domainFilter, ToPurchaseOrderResponse), nil
}

func (s *PurchaseOrderService) ensureVendor(ctx context.Context, userID, vendorID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return purchasing.ErrInvalidVendor
	}
	if _, err := s.vendorRepo.FindByID(ctx, userID, vendorID); err != nil {
		if shared.IsNotFound(err) {
			return purchasing.ErrInvalidVendor
		}
		return err
	}
	return nil
}

func (s *PurchaseOrderService) checkNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil
	}
	exists, err := s.poRepo.ExistsByNumber(ctx, userID, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Purchase order number already exists")
	}
	return nil
}
