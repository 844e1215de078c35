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
	"go.uber.org/zap"
)

// ErrAwaitingApproval is returned when an order with an open stock approval is shipped directly
var ErrAwaitingApproval = shared.NewDomainError("INVALID_STATE", "Order is awaiting stock approval")

// SalesOrderService handles sales order use cases
type SalesOrderService struct {
	orderRepo    sales.SalesOrderRepository
	customerRepo crm.CustomerRepository
	txScope      transaction.Scope
	logger       *zap.Logger
	now          func() time.Time
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo sales.SalesOrderRepository,
	customerRepo crm.CustomerRepository,
	txScope transaction.Scope,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
		now:          time.Now,
	}
}

// Create creates a draft sales order and prices its lines
func (s *SalesOrderService) Create(ctx context.Context, userID uuid.UUID, req SalesOrderRequest) (*SalesOrderResponse, error) {
	if err := ensureCustomer(ctx, s.customerRepo, userID, req.CustomerID); err != nil {
		return nil, err
	}
	if err := s.checkNumber(ctx, userID, req.OrderNumber, nil); err != nil {
		return nil, err
	}

	date := s.now()
	if req.OrderDate != nil {
		date = *req.OrderDate
	}
	order, err := sales.NewSalesOrder(userID, req.CustomerID, req.OrderNumber, date)
	if err != nil {
		return nil, err
	}
	if err := applyOrderRequest(order, req); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// GetByID returns an order with its lines
func (s *SalesOrderService) GetByID(ctx context.Context, userID, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Update replaces the header and every line. Status changes go through UpdateStatus.
func (s *SalesOrderService) Update(ctx context.Context, userID, id uuid.UUID, req SalesOrderRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := ensureCustomer(ctx, s.customerRepo, userID, req.CustomerID); err != nil {
		return nil, err
	}
	if err := order.SetCustomer(req.CustomerID); err != nil {
		return nil, err
	}
	if number := strings.TrimSpace(req.OrderNumber); number != "" && number != order.OrderNumber {
		if err := s.checkNumber(ctx, userID, number, &id); err != nil {
			return nil, err
		}
		order.OrderNumber = number
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if err := applyOrderRequest(order, req); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

func applyOrderRequest(order *sales.SalesOrder, req SalesOrderRequest) error {
	if err := order.SetPaymentStatus(sales.PaymentStatus(req.PaymentStatus)); err != nil {
		return err
	}
	order.ExpectedDeliveryDate = req.ExpectedDeliveryDate
	order.Notes = req.Notes
	return order.ReplaceItems(ToLineInputs(req.Items), req.DiscountAmount)
}

// ReplaceItems saves the lines edited on the invoice view, pricing lines without
// their own rate at the order's header percents.
func (s *SalesOrderService) ReplaceItems(ctx context.Context, userID, id uuid.UUID, req ReplaceItemsRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	inputs := withHeaderRates(ToLineInputs(req.Items), order.Totals)
	if err := order.ReplaceItems(inputs, req.DiscountAmount); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// UpdateStatus moves the order along the status machine.
// Confirming opens a pending stock approval. Cancelling rejects an open approval.
// Shipping is refused while an approval is pending; approve it instead.
func (s *SalesOrderService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req UpdateOrderStatusRequest) (*SalesOrderResponse, error) {
	var resp SalesOrderResponse
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		order, err := repos.SalesOrders().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}

		switch sales.OrderStatus(req.Status) {
		case sales.OrderStatusConfirmed:
			approval, err := order.Confirm()
			if err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
			if err := repos.StockApprovals().Save(ctx, approval); err != nil {
				return err
			}
		case sales.OrderStatusShipped:
			pending, err := pendingApproval(ctx, repos, userID, id)
			if err != nil {
				return err
			}
			if pending != nil {
				return ErrAwaitingApproval
			}
			if err := order.Ship(); err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
		case sales.OrderStatusCancelled:
			if err := order.Cancel(); err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
			pending, err := pendingApproval(ctx, repos, userID, id)
			if err != nil {
				return err
			}
			if pending != nil {
				if err := pending.Reject("Order cancelled"); err != nil {
					return err
				}
				if err := repos.StockApprovals().Save(ctx, pending); err != nil {
					return err
				}
			}
		default:
			if err := order.TransitionTo(sales.OrderStatus(req.Status)); err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
		}

		resp = ToSalesOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales order status changed",
		zap.String("order_id", id.String()),
		zap.String("status", resp.Status))
	return &resp, nil
}

func pendingApproval(ctx context.Context, repos transaction.Repositories, userID, orderID uuid.UUID) (*sales.StockApproval, error) {
	approval, err := repos.StockApprovals().FindByOrder(ctx, userID, orderID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if !approval.IsPending() {
		return nil, nil
	}
	return approval, nil
}

// UpdatePaymentStatus records how much of the order has been paid
func (s *SalesOrderService) UpdatePaymentStatus(ctx context.Context, userID, id uuid.UUID, req UpdatePaymentStatusRequest) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := order.SetPaymentStatus(sales.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToSalesOrderResponse(order)
	return &resp, nil
}

// Delete removes an order with its lines and approval
func (s *SalesOrderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, userID, id)
}

// List returns a page of sales orders, newest first
func (s *SalesOrderService) List(ctx context.Context, userID uuid.UUID, filter SalesOrderListFilter) (*query.Page[SalesOrderResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.Status != "" {
		domainFilter.Filters[sales.FilterStatus] = filter.Status
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters[sales.FilterPaymentStatus] = filter.PaymentStatus
	}
	if filter.CustomerID != nil {
		domainFilter.Filters[sales.FilterCustomerID] = *filter.CustomerID
	}

	orders, err := s.orderRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(orders, total, domainFilter, ToSalesOrderResponse), nil
}

func (s *SalesOrderService) checkNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil
	}
	exists, err := s.orderRepo.ExistsByNumber(ctx, userID, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Order number already exists")
	}
	return nil
}
