package sales

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the sales repositories
const (
	FilterStatus        = "status"
	FilterPaymentStatus = "payment_status"
	FilterCustomerID    = "customer_id"
)

// QuotationRepository persists quotations with their items.
// Search matches the quotation number.
type QuotationRepository interface {
	shared.OwnedRepository[Quotation]
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

// SalesOrderRepository persists sales orders with their items.
// Search matches the order number.
type SalesOrderRepository interface {
	shared.OwnedRepository[SalesOrder]
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

// StockApprovalRepository persists stock approvals
type StockApprovalRepository interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*StockApproval, error)
	FindPending(ctx context.Context, userID uuid.UUID) ([]StockApproval, error)
	FindByOrder(ctx context.Context, userID, orderID uuid.UUID) (*StockApproval, error)
	Save(ctx context.Context, approval *StockApproval) error
}
