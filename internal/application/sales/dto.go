package sales

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one document line as entered in the editor.
// Omitted percents take the default or the document's header rate.
type LineItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Description string           `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	CGSTPercent *decimal.Decimal `json:"cgst_percent"`
	SGSTPercent *decimal.Decimal `json:"sgst_percent"`
}

// LineItemResponse is a priced document line
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CGSTPercent decimal.Decimal `json:"cgst_percent"`
	SGSTPercent decimal.Decimal `json:"sgst_percent"`
	CGSTAmount  decimal.Decimal `json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `json:"sgst_amount"`
	Amount      decimal.Decimal `json:"amount"`
}

// TotalsResponse is the header roll-up of a document
type TotalsResponse struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	CGSTPercent    decimal.Decimal `json:"cgst_percent"`
	SGSTPercent    decimal.Decimal `json:"sgst_percent"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// ReplaceItemsRequest is the invoice editor save
type ReplaceItemsRequest struct {
	Items          []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
}

// QuotationRequest carries the quotation form
type QuotationRequest struct {
	QuotationNumber string            `json:"quotation_number" binding:"max=50"`
	CustomerID      uuid.UUID         `json:"customer_id" binding:"required"`
	QuotationDate   *time.Time        `json:"quotation_date"`
	ValidUntil      *time.Time        `json:"valid_until"`
	Status          string            `json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	Notes           string            `json:"notes" binding:"max=5000"`
	DiscountAmount  decimal.Decimal   `json:"discount_amount"`
	Items           []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QuotationResponse is a quotation with its lines
type QuotationResponse struct {
	ID              uuid.UUID  `json:"id"`
	QuotationNumber string     `json:"quotation_number"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	QuotationDate   time.Time  `json:"quotation_date"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	TotalsResponse
	Items     []LineItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// QuotationListFilter filters the quotation list
type QuotationListFilter struct {
	query.List
	Status     string     `form:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	CustomerID *uuid.UUID `form:"customer_id"`
}

// UpdateQuotationStatusRequest changes the quotation status
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent accepted rejected"`
}

// ConvertQuotationResult is returned by quotation conversion
type ConvertQuotationResult struct {
	Quotation  QuotationResponse  `json:"quotation"`
	SalesOrder SalesOrderResponse `json:"sales_order"`
}

// SalesOrderRequest carries the sales order form
type SalesOrderRequest struct {
	OrderNumber          string            `json:"order_number" binding:"max=50"`
	CustomerID           uuid.UUID         `json:"customer_id" binding:"required"`
	OrderDate            *time.Time        `json:"order_date"`
	ExpectedDeliveryDate *time.Time        `json:"expected_delivery_date"`
	PaymentStatus        string            `json:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	Notes                string            `json:"notes" binding:"max=5000"`
	DiscountAmount       decimal.Decimal   `json:"discount_amount"`
	Items                []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderResponse is a sales order with its lines
type SalesOrderResponse struct {
	ID                   uuid.UUID  `json:"id"`
	OrderNumber          string     `json:"order_number"`
	CustomerID           uuid.UUID  `json:"customer_id"`
	QuotationID          *uuid.UUID `json:"quotation_id,omitempty"`
	OrderDate            time.Time  `json:"order_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	Status               string     `json:"status"`
	PaymentStatus        string     `json:"payment_status"`
	Notes                string     `json:"notes"`
	TotalsResponse
	Items     []LineItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// SalesOrderListFilter filters the sales order list
type SalesOrderListFilter struct {
	query.List
	Status        string     `form:"status" binding:"omitempty,oneof=draft confirmed shipped delivered cancelled"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	CustomerID    *uuid.UUID `form:"customer_id"`
}

// UpdateOrderStatusRequest moves an order along its status machine
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed shipped delivered cancelled"`
}

// UpdatePaymentStatusRequest changes the payment state
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending partial paid"`
}

// StockApprovalResponse is a stock approval with a summary of its order
type StockApprovalResponse struct {
	ID           uuid.UUID        `json:"id"`
	SalesOrderID uuid.UUID        `json:"sales_order_id"`
	OrderNumber  string           `json:"order_number,omitempty"`
	CustomerID   *uuid.UUID       `json:"customer_id,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	Status       string           `json:"status"`
	ApprovedBy   *uuid.UUID       `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time       `json:"approved_at,omitempty"`
	Notes        string           `json:"notes"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ApprovalDecisionRequest carries the approver's note
type ApprovalDecisionRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ApprovalDecisionResult is returned by approve and reject
type ApprovalDecisionResult struct {
	Approval   StockApprovalResponse `json:"approval"`
	SalesOrder SalesOrderResponse    `json:"sales_order"`
}

// ToLineInputs converts request lines to domain inputs
func ToLineInputs(items []LineItemRequest) []sales.LineInput {
	out := make([]sales.LineInput, len(items))
	for i, it := range items {
		out[i] = sales.LineInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CGSTPercent: it.CGSTPercent,
			SGSTPercent: it.SGSTPercent,
		}
	}
	return out
}

func toLineResponses(items []sales.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CGSTPercent: it.CGSTPercent,
			SGSTPercent: it.SGSTPercent,
			CGSTAmount:  it.CGSTAmount,
			SGSTAmount:  it.SGSTAmount,
			Amount:      it.Amount,
		})
	}
	return out
}

func toTotalsResponse(t sales.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:       t.Subtotal,
		CGSTPercent:    t.CGSTPercent,
		SGSTPercent:    t.SGSTPercent,
		TaxAmount:      t.TaxAmount,
		DiscountAmount: t.DiscountAmount,
		TotalAmount:    t.TotalAmount,
	}
}

// ToQuotationResponse converts a domain Quotation
func ToQuotationResponse(q *sales.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		CustomerID:      q.CustomerID,
		QuotationDate:   q.QuotationDate,
		ValidUntil:      q.ValidUntil,
		Status:          string(q.Status),
		Notes:           q.Notes,
		TotalsResponse:  toTotalsResponse(q.Totals),
		Items:           toLineResponses(q.Items),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// ToSalesOrderResponse converts a domain SalesOrder
func ToSalesOrderResponse(o *sales.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		QuotationID:          o.QuotationID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Status:               string(o.Status),
		PaymentStatus:        string(o.PaymentStatus),
		Notes:                o.Notes,
		TotalsResponse:       toTotalsResponse(o.Totals),
		Items:                toLineResponses(o.Items),
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// ToStockApprovalResponse converts an approval; order may be nil
func ToStockApprovalResponse(a *sales.StockApproval, order *sales.SalesOrder) StockApprovalResponse {
	resp := StockApprovalResponse{
		ID:           a.ID,
		SalesOrderID: a.SalesOrderID,
		Status:       string(a.Status),
		ApprovedBy:   a.ApprovedBy,
		ApprovedAt:   a.ApprovedAt,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
	if order != nil {
		total := order.TotalAmount
		customerID := order.CustomerID
		resp.OrderNumber = order.OrderNumber
		resp.CustomerID = &customerID
		resp.TotalAmount = &total
	}
	return resp
}
