package purchasing

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the purchasing repositories
const (
	FilterStatus   = "status"
	FilterVendorID = "vendor_id"
)

// VendorRepository persists vendors.
// Search matches name, email, phone and company.
type VendorRepository interface {
	shared.OwnedRepository[Vendor]
}

// PurchaseOrderRepository persists purchase orders with their items
type PurchaseOrderRepository interface {
	shared.OwnedRepository[PurchaseOrder]
	ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}
