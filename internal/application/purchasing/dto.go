package purchasing

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorRequest carries the vendor form
type VendorRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Company   string `json:"company" binding:"max=200"`
	Address   string `json:"address" binding:"max=1000"`
	GSTNumber string `json:"gst_number" binding:"omitempty,gst"`
}

// VendorResponse is a vendor returned to clients
type VendorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Address   string    `json:"address"`
	GSTNumber string    `json:"gst_number"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VendorListFilter filters the vendor list
type VendorListFilter struct {
	query.List
}

// ToVendorResponse converts a domain Vendor
func ToVendorResponse(v *purchasing.Vendor) VendorResponse {
	return VendorResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Company:   v.Company,
		Address:   v.Address,
		GSTNumber: v.GSTNumber,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// POItemRequest is one purchase order line; TaxPercent defaults to 18
type POItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Description string           `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	TaxPercent  *decimal.Decimal `json:"tax_percent"`
}

// POItemResponse is a priced purchase order line
type POItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxPercent  decimal.Decimal `json:"tax_percent"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseOrderRequest carries the purchase order form
type PurchaseOrderRequest struct {
	PONumber             string          `json:"po_number" binding:"max=50"`
	VendorID             uuid.UUID       `json:"vendor_id" binding:"required"`
	OrderDate            *time.Time      `json:"order_date"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
	Notes                string          `json:"notes" binding:"max=5000"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	Items                []POItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderResponse is a purchase order with its lines
type PurchaseOrderResponse struct {
	ID                   uuid.UUID        `json:"id"`
	PONumber             string           `json:"po_number"`
	VendorID             uuid.UUID        `json:"vendor_id"`
	OrderDate            time.Time        `json:"order_date"`
	ExpectedDeliveryDate *time.Time       `json:"expected_delivery_date,omitempty"`
	Status               string           `json:"status"`
	Notes                string           `json:"notes"`
	Subtotal             decimal.Decimal  `json:"subtotal"`
	TaxAmount            decimal.Decimal  `json:"tax_amount"`
	DiscountAmount       decimal.Decimal  `json:"discount_amount"`
	TotalAmount          decimal.Decimal  `json:"total_amount"`
	Items                []POItemResponse `json:"items"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// PurchaseOrderListFilter filters the purchase order list
type PurchaseOrderListFilter struct {
	query.List
	Status   string     `form:"status" binding:"omitempty,oneof=draft sent received cancelled"`
	VendorID *uuid.UUID `form:"vendor_id"`
}

// UpdatePOStatusRequest changes the purchase order status
type UpdatePOStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent received cancelled"`
}

func toItemInputs(items []POItemRequest) []purchasing.POItemInput {
	out := make([]purchasing.POItemInput, len(items))
	for i, it := range items {
		out[i] = purchasing.POItemInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxPercent:  it.TaxPercent,
		}
	}
	return out
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder
func ToPurchaseOrderResponse(po *purchasing.PurchaseOrder) PurchaseOrderResponse {
	items := make([]POItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, POItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxPercent:  it.TaxPercent,
			Amount:      it.Amount,
		})
	}
	return PurchaseOrderResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		VendorID:             po.VendorID,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		Status:               string(po.Status),
		Notes:                po.Notes,
		Subtotal:             po.Subtotal,
		TaxAmount:            po.TaxAmount,
		DiscountAmount:       po.DiscountAmount,
		TotalAmount:          po.TotalAmount,
		Items:                items,
		CreatedAt:            po.CreatedAt,
		UpdatedAt:            po.UpdatedAt,
	}
}
