package sales

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/application/transaction"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockApprovalService decides the stock approvals opened by order confirmation
type StockApprovalService struct {
	approvalRepo sales.StockApprovalRepository
	orderRepo    sales.SalesOrderRepository
	txScope      transaction.Scope
	logger       *zap.Logger
	now          func() time.Time
}

// NewStockApprovalService creates a new StockApprovalService
func NewStockApprovalService(
	approvalRepo sales.StockApprovalRepository,
	orderRepo sales.SalesOrderRepository,
	txScope transaction.Scope,
	logger *zap.Logger,
) *StockApprovalService {
	return &StockApprovalService{
		approvalRepo: approvalRepo,
		orderRepo:    orderRepo,
		txScope:      txScope,
		logger:       logger,
		now:          time.Now,
	}
}

// ListPending returns the open approvals with a summary of each order
func (s *StockApprovalService) ListPending(ctx context.Context, userID uuid.UUID) ([]StockApprovalResponse, error) {
	approvals, err := s.approvalRepo.FindPending(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]StockApprovalResponse, 0, len(approvals))
	for i := range approvals {
		order, err := s.orderRepo.FindByID(ctx, userID, approvals[i].SalesOrderID)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		out = append(out, ToStockApprovalResponse(&approvals[i], order))
	}
	return out, nil
}

// Approve deducts stock for every product line of the order, floored at zero,
// marks the approval approved and ships the order, all in one transaction.
func (s *StockApprovalService) Approve(ctx context.Context, userID, id uuid.UUID, req ApprovalDecisionRequest) (*ApprovalDecisionResult, error) {
	var result ApprovalDecisionResult
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		approval, err := repos.StockApprovals().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := approval.Approve(userID, s.now(), req.Notes); err != nil {
			return err
		}
		order, err := repos.SalesOrders().FindByID(ctx, userID, approval.SalesOrderID)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			product, err := repos.Products().FindByID(ctx, userID, *item.ProductID)
			if err != nil {
				if shared.IsNotFound(err) {
					continue
				}
				return err
			}
			product.DeductStock(item.StockQuantity())
			if err := repos.Products().Save(ctx, product); err != nil {
				return err
			}
		}

		if err := order.Ship(); err != nil {
			return err
		}
		if err := repos.SalesOrders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.StockApprovals().Save(ctx, approval); err != nil {
			return err
		}

		result = ApprovalDecisionResult{
			Approval:   ToStockApprovalResponse(approval, order),
			SalesOrder: ToSalesOrderResponse(order),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock approved",
		zap.String("approval_id", id.String()),
		zap.String("order_number", result.SalesOrder.OrderNumber))
	return &result, nil
}

// Reject closes the approval and cancels the order without moving stock
func (s *StockApprovalService) Reject(ctx context.Context, userID, id uuid.UUID, req ApprovalDecisionRequest) (*ApprovalDecisionResult, error) {
	var result ApprovalDecisionResult
	err := s.txScope.Execute(ctx, func(repos transaction.Repositories) error {
		approval, err := repos.StockApprovals().FindByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := approval.Reject(req.Notes); err != nil {
			return err
		}
		order, err := repos.SalesOrders().FindByID(ctx, userID, approval.SalesOrderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.SalesOrders().Save(ctx, order); err != nil {
			return err
		}
		if err := repos.StockApprovals().Save(ctx, approval); err != nil {
			return err
		}

		result = ApprovalDecisionResult{
			Approval:   ToStockApprovalResponse(approval, order),
			SalesOrder: ToSalesOrderResponse(order),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock approval rejected", zap.String("approval_id", id.String()))
	return &result, nil
}
