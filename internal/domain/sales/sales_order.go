package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports a status with no further transitions
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:     {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

// CanTransitionTo reports whether from -> to is allowed
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus tracks how much of an order has been paid
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// ErrInvalidCustomer is returned for a missing or foreign customer reference
var ErrInvalidCustomer = shared.NewDomainError("INVALID_INPUT", "Invalid customer")

// SalesOrder is a customer order
type SalesOrder struct {
	shared.OwnedEntity
	OrderNumber          string
	CustomerID           uuid.UUID
	QuotationID          *uuid.UUID
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	Status               OrderStatus
	PaymentStatus        PaymentStatus
	Notes                string
	Totals
	Items []LineItem
}

// NewSalesOrder creates a draft order. An empty number is generated from now.
func NewSalesOrder(userID, customerID uuid.UUID, number string, date time.Time) (*SalesOrder, error) {
	if customerID == uuid.Nil {
		return nil, ErrInvalidCustomer
	}
	number = strings.TrimSpace(number)
	if number == "" {
		number = shared.NewDocumentNumber(shared.SalesOrderPrefix, time.Now())
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &SalesOrder{
		OwnedEntity:   shared.NewOwnedEntity(userID),
		OrderNumber:   number,
		CustomerID:    customerID,
		OrderDate:     date,
		Status:        OrderStatusDraft,
		PaymentStatus: PaymentStatusPending,
	}, nil
}

// ReplaceItems recomputes lines and totals. Lines without their own rates
// are taxed at the default 9/9.
func (o *SalesOrder) ReplaceItems(inputs []LineInput, discount decimal.Decimal) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit items of a %s order", o.Status))
	}
	items, totals, err := BuildLines(inputs, discount, shared.DefaultCGSTPercent, shared.DefaultSGSTPercent)
	if err != nil {
		return err
	}
	o.Items = items
	o.Totals = totals
	o.Touch()
	return nil
}

// SetCustomer changes the ordering customer
func (o *SalesOrder) SetCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return ErrInvalidCustomer
	}
	o.CustomerID = customerID
	o.Touch()
	return nil
}

// SetPaymentStatus updates the payment state
func (o *SalesOrder) SetPaymentStatus(status PaymentStatus) error {
	if status == "" {
		status = PaymentStatusPending
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status: "+string(status))
	}
	o.PaymentStatus = status
	o.Touch()
	return nil
}

// TransitionTo moves the order along the status machine
func (o *SalesOrder) TransitionTo(to OrderStatus) error {
	if !to.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(to))
	}
	if !o.Status.CanTransitionTo(to) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, to))
	}
	o.Status = to
	o.Touch()
	return nil
}

// Confirm moves a draft order to confirmed and opens a pending stock approval
func (o *SalesOrder) Confirm() (*StockApproval, error) {
	if len(o.Items) == 0 {
		return nil, ErrNoLineItems
	}
	if err := o.TransitionTo(OrderStatusConfirmed); err != nil {
		return nil, err
	}
	return NewStockApproval(o.UserID, o.ID), nil
}

// Ship marks the order shipped
func (o *SalesOrder) Ship() error { return o.TransitionTo(OrderStatusShipped) }

// Deliver marks the order delivered
func (o *SalesOrder) Deliver() error { return o.TransitionTo(OrderStatusDelivered) }

// Cancel cancels the order
func (o *SalesOrder) Cancel() error { return o.TransitionTo(OrderStatusCancelled) }

// IsPending reports an order that is neither delivered nor cancelled
func (o *SalesOrder) IsPending() bool {
	return o.Status != OrderStatusDelivered && o.Status != OrderStatusCancelled
}

// InvoiceSubtotal derives the pre-tax amount from the stored totals
func (o *SalesOrder) InvoiceSubtotal() decimal.Decimal {
	return o.TotalAmount.Sub(o.TaxAmount).Add(o.DiscountAmount)
}
