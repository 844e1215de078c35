package sales

import (
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus is the lifecycle state of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// IsValid reports whether s is a known status
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected:
		return true
	}
	return false
}

// Quotation is a priced offer to a customer
type Quotation struct {
	shared.OwnedEntity
	QuotationNumber string
	CustomerID      uuid.UUID
	QuotationDate   time.Time
	ValidUntil      *time.Time
	Status          QuotationStatus
	Notes           string
	Totals
	Items []LineItem
}

// NewQuotation creates a draft quotation. An empty number is generated from now.
func NewQuotation(userID, customerID uuid.UUID, number string, date time.Time) (*Quotation, error) {
	if customerID == uuid.Nil {
		return nil, ErrInvalidCustomer
	}
	number = strings.TrimSpace(number)
	if number == "" {
		number = shared.NewDocumentNumber(shared.QuotationPrefix, time.Now())
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Quotation{
		OwnedEntity:     shared.NewOwnedEntity(userID),
		QuotationNumber: number,
		CustomerID:      customerID,
		QuotationDate:   date,
		Status:          QuotationStatusDraft,
	}, nil
}

// ReplaceItems recomputes lines and totals from inputs
func (q *Quotation) ReplaceItems(inputs []LineInput, discount decimal.Decimal) error {
	items, totals, err := BuildLines(inputs, discount, shared.DefaultCGSTPercent, shared.DefaultSGSTPercent)
	if err != nil {
		return err
	}
	q.Items = items
	q.Totals = totals
	q.Touch()
	return nil
}

// SetCustomer changes the quoted customer
func (q *Quotation) SetCustomer(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return ErrInvalidCustomer
	}
	q.CustomerID = customerID
	q.Touch()
	return nil
}

// SetStatus sets the status directly
func (q *Quotation) SetStatus(status QuotationStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown quotation status: "+string(status))
	}
	q.Status = status
	q.Touch()
	return nil
}

// CanConvert reports whether the quotation may become a sales order
func (q *Quotation) CanConvert() bool {
	return q.Status == QuotationStatusDraft || q.Status == QuotationStatusSent
}

// ConvertToSalesOrder copies the lines into a new draft order and marks the quotation accepted
func (q *Quotation) ConvertToSalesOrder(orderNumber string, now time.Time) (*SalesOrder, error) {
	if !q.CanConvert() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft or sent quotations can be converted, current status: "+string(q.Status))
	}
	so, err := NewSalesOrder(q.UserID, q.CustomerID, orderNumber, now)
	if err != nil {
		return nil, err
	}
	so.Notes = q.Notes
	so.QuotationID = &q.ID
	so.Items = make([]LineItem, len(q.Items))
	for i, it := range q.Items {
		it.ID = uuid.New()
		so.Items[i] = it
	}
	so.Totals = q.Totals

	q.Status = QuotationStatusAccepted
	q.Touch()
	return so, nil
}
