package purchasing

import (
	"fmt"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POStatus is the state of a purchase order
type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusSent      POStatus = "sent"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusSent, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// ErrInvalidVendor is returned for a missing or foreign vendor reference
var ErrInvalidVendor = shared.NewDomainError("INVALID_INPUT", "Invalid vendor")

// ErrNoItems is returned when no item carries a description
var ErrNoItems = shared.NewDomainError("INVALID_INPUT", "At least one item with a description is required")

// POItem is a purchase order line taxed at a single rate
type POItem struct {
	ID          uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxPercent  decimal.Decimal
	Amount      decimal.Decimal
}

// POItemInput is an item as entered; a nil TaxPercent means the default rate
type POItemInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxPercent  *decimal.Decimal
}

// PurchaseOrder is an order placed with a vendor
type PurchaseOrder struct {
	shared.OwnedEntity
	PONumber             string
	VendorID             uuid.UUID
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Status               POStatus
	Notes                string
	Subtotal             decimal.Decimal
	TaxAmount            decimal.Decimal
	DiscountAmount       decimal.Decimal
	TotalAmount          decimal.Decimal
	Items                []POItem
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(userID, vendorID uuid.UUID, number string, date time.Time) (*PurchaseOrder, error) {
	if vendorID == uuid.Nil {
		return nil, ErrInvalidVendor
	}
	number = strings.TrimSpace(number)
	if number == "" {
		number = shared.NewDocumentNumber(shared.PurchaseOrderPrefix, time.Now())
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &PurchaseOrder{
		OwnedEntity: shared.NewOwnedEntity(userID),
		PONumber:    number,
		VendorID:    vendorID,
		OrderDate:   date,
		Status:      POStatusDraft,
	}, nil
}

// ReplaceItems recomputes items and totals
func (po *PurchaseOrder) ReplaceItems(inputs []POItemInput, discount decimal.Decimal) error {
	if po.Status == POStatusReceived || po.Status == POStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit items of a %s purchase order", po.Status))
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	items := make([]POItem, 0, len(inputs))
	lines := make([]shared.SimpleTaxLine, 0, len(inputs))
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			continue
		}
		if in.Quantity.IsNegative() || in.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Quantity and unit price cannot be negative")
		}
		if in.ProductID != nil {
			if err := shared.ValidateStockQuantity(in.Quantity); err != nil {
				return err
			}
		}
		rate := shared.DefaultPurchaseTaxPercent
		if in.TaxPercent != nil {
			rate = *in.TaxPercent
		}
		if err := shared.ValidateTaxPercent(rate); err != nil {
			return err
		}
		line := shared.CalculateSimpleTaxLine(in.Quantity, in.UnitPrice, rate)
		lines = append(lines, line)
		items = append(items, POItem{
			ID:          uuid.New(),
			ProductID:   in.ProductID,
			Description: desc,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TaxPercent:  rate,
			Amount:      line.Amount,
		})
	}
	if len(items) == 0 {
		return ErrNoItems
	}

	totals := shared.SumSimpleTaxLines(lines, discount)
	po.Items = items
	po.Subtotal = totals.Subtotal
	po.TaxAmount = totals.TaxAmount
	po.DiscountAmount = totals.Discount
	po.TotalAmount = totals.Total
	po.Touch()
	return nil
}

// SetVendor changes the vendor
func (po *PurchaseOrder) SetVendor(vendorID uuid.UUID) error {
	if vendorID == uuid.Nil {
		return ErrInvalidVendor
	}
	po.VendorID = vendorID
	po.Touch()
	return nil
}

// SetStatus sets a non-receiving status. Use Receive to mark goods received.
func (po *PurchaseOrder) SetStatus(status POStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status: "+string(status))
	}
	if status == POStatusReceived {
		return po.Receive()
	}
	if po.Status == POStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Received purchase orders cannot change status")
	}
	po.Status = status
	po.Touch()
	return nil
}

// Receive marks the goods received. The caller adds each line's quantity to stock.
func (po *PurchaseOrder) Receive() error {
	switch po.Status {
	case POStatusReceived:
		return shared.NewDomainError("INVALID_STATE", "Purchase order has already been received")
	case POStatusCancelled:
		return shared.NewDomainError("INVALID_STATE", "Cancelled purchase orders cannot be received")
	}
	po.Status = POStatusReceived
	po.Touch()
	return nil
}

// StockReceipts returns product ID to quantity for lines that reference a product
func (po *PurchaseOrder) StockReceipts() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, it := range po.Items {
		if it.ProductID == nil {
			continue
		}
		out[*it.ProductID] += int(it.Quantity.IntPart())
	}
	return out
}
