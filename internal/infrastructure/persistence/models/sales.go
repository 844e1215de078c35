package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TotalsColumns holds the header amounts shared by quotations and sales orders.
type TotalsColumns struct {
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CGSTPercent    decimal.Decimal `gorm:"column:cgst_percent;type:decimal(5,2);not null;default:9"`
	SGSTPercent    decimal.Decimal `gorm:"column:sgst_percent;type:decimal(5,2);not null;default:9"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

func totalsFromDomain(t sales.Totals) TotalsColumns {
	return TotalsColumns{
		Subtotal:       t.Subtotal,
		CGSTPercent:    t.CGSTPercent,
		SGSTPercent:    t.SGSTPercent,
		TaxAmount:      t.TaxAmount,
		DiscountAmount: t.DiscountAmount,
		TotalAmount:    t.TotalAmount,
	}
}

func (c TotalsColumns) toDomain() sales.Totals {
	return sales.Totals{
		Subtotal:       c.Subtotal,
		CGSTPercent:    c.CGSTPercent,
		SGSTPercent:    c.SGSTPercent,
		TaxAmount:      c.TaxAmount,
		DiscountAmount: c.DiscountAmount,
		TotalAmount:    c.TotalAmount,
	}
}

// LineColumns holds the priced line shared by quotation and sales order items.
type LineColumns struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CGSTPercent decimal.Decimal `gorm:"column:cgst_percent;type:decimal(5,2);not null;default:0"`
	SGSTPercent decimal.Decimal `gorm:"column:sgst_percent;type:decimal(5,2);not null;default:0"`
	CGSTAmount  decimal.Decimal `gorm:"column:cgst_amount;type:decimal(18,2);not null;default:0"`
	SGSTAmount  decimal.Decimal `gorm:"column:sgst_amount;type:decimal(18,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
}

func lineFromDomain(l sales.LineItem, position int) LineColumns {
	return LineColumns{
		ID:          l.ID,
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		CGSTPercent: l.CGSTPercent,
		SGSTPercent: l.SGSTPercent,
		CGSTAmount:  l.CGSTAmount,
		SGSTAmount:  l.SGSTAmount,
		Amount:      l.Amount,
		Position:    position,
	}
}

func (c LineColumns) toDomain() sales.LineItem {
	return sales.LineItem{
		ID:          c.ID,
		ProductID:   c.ProductID,
		Description: c.Description,
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice,
		CGSTPercent: c.CGSTPercent,
		SGSTPercent: c.SGSTPercent,
		CGSTAmount:  c.CGSTAmount,
		SGSTAmount:  c.SGSTAmount,
		Amount:      c.Amount,
	}
}

// QuotationModel is the persistence model for the Quotation aggregate.
type QuotationModel struct {
	OwnedModel
	QuotationNumber string                `gorm:"type:varchar(50);not null;index"`
	CustomerID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	QuotationDate   time.Time             `gorm:"type:date;not null"`
	ValidUntil      *time.Time            `gorm:"type:date"`
	Status          sales.QuotationStatus `gorm:"type:varchar(20);not null;index"`
	Notes           string                `gorm:"type:text"`
	TotalsColumns
	Items []QuotationItemModel `gorm:"foreignKey:QuotationID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation.
func (m *QuotationModel) ToDomain() *sales.Quotation {
	q := &sales.Quotation{
		OwnedEntity:     m.ToOwnedEntity(),
		QuotationNumber: m.QuotationNumber,
		CustomerID:      m.CustomerID,
		QuotationDate:   m.QuotationDate,
		ValidUntil:      m.ValidUntil,
		Status:          m.Status,
		Notes:           m.Notes,
		Totals:          m.TotalsColumns.toDomain(),
		Items:           make([]sales.LineItem, len(m.Items)),
	}
	for i, it := range m.Items {
		q.Items[i] = it.LineColumns.toDomain()
	}
	return q
}

// QuotationModelFromDomain creates a new persistence model from a domain Quotation.
func QuotationModelFromDomain(q *sales.Quotation) *QuotationModel {
	m := &QuotationModel{
		QuotationNumber: q.QuotationNumber,
		CustomerID:      q.CustomerID,
		QuotationDate:   q.QuotationDate,
		ValidUntil:      q.ValidUntil,
		Status:          q.Status,
		Notes:           q.Notes,
		TotalsColumns:   totalsFromDomain(q.Totals),
		Items:           make([]QuotationItemModel, len(q.Items)),
	}
	m.FromDomainOwnedEntity(q.OwnedEntity)
	for i, it := range q.Items {
		m.Items[i] = QuotationItemModel{QuotationID: q.ID, LineColumns: lineFromDomain(it, i)}
	}
	return m
}

// QuotationItemModel is one line of a quotation.
type QuotationItemModel struct {
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineColumns
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_items"
}

// SalesOrderModel is the persistence model for the SalesOrder aggregate.
type SalesOrderModel struct {
	OwnedModel
	OrderNumber          string              `gorm:"type:varchar(50);not null;index"`
	CustomerID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	QuotationID          *uuid.UUID          `gorm:"type:uuid;index"`
	OrderDate            time.Time           `gorm:"type:date;not null"`
	ExpectedDeliveryDate *time.Time          `gorm:"type:date"`
	Status               sales.OrderStatus   `gorm:"type:varchar(20);not null;index"`
	PaymentStatus        sales.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Notes                string              `gorm:"type:text"`
	TotalsColumns
	Items []SalesOrderItemModel `gorm:"foreignKey:SalesOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *sales.SalesOrder {
	o := &sales.SalesOrder{
		OwnedEntity:          m.ToOwnedEntity(),
		OrderNumber:          m.OrderNumber,
		CustomerID:           m.CustomerID,
		QuotationID:          m.QuotationID,
		OrderDate:            m.OrderDate,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Status:               m.Status,
		PaymentStatus:        m.PaymentStatus,
		Notes:                m.Notes,
		Totals:               m.TotalsColumns.toDomain(),
		Items:                make([]sales.LineItem, len(m.Items)),
	}
	for i, it := range m.Items {
		o.Items[i] = it.LineColumns.toDomain()
	}
	return o
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *sales.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		OrderNumber:          o.OrderNumber,
		CustomerID:           o.CustomerID,
		QuotationID:          o.QuotationID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		Status:               o.Status,
		PaymentStatus:        o.PaymentStatus,
		Notes:                o.Notes,
		TotalsColumns:        totalsFromDomain(o.Totals),
		Items:                make([]SalesOrderItemModel, len(o.Items)),
	}
	m.FromDomainOwnedEntity(o.OwnedEntity)
	for i, it := range o.Items {
		m.Items[i] = SalesOrderItemModel{SalesOrderID: o.ID, LineColumns: lineFromDomain(it, i)}
	}
	return m
}

// SalesOrderItemModel is one line of a sales order.
type SalesOrderItemModel struct {
	SalesOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineColumns
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// StockApprovalModel is the persistence model for the StockApproval entity.
type StockApprovalModel struct {
	OwnedModel
	SalesOrderID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status       sales.ApprovalStatus `gorm:"type:varchar(20);not null;index"`
	ApprovedBy   *uuid.UUID           `gorm:"type:uuid"`
	ApprovedAt   *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockApprovalModel) TableName() string {
	return "inventory_approvals"
}

// ToDomain converts the persistence model to a domain StockApproval.
func (m *StockApprovalModel) ToDomain() *sales.StockApproval {
	return &sales.StockApproval{
		OwnedEntity:  m.ToOwnedEntity(),
		SalesOrderID: m.SalesOrderID,
		Status:       m.Status,
		ApprovedBy:   m.ApprovedBy,
		ApprovedAt:   m.ApprovedAt,
		Notes:        m.Notes,
	}
}

// StockApprovalModelFromDomain creates a new persistence model from a domain StockApproval.
func StockApprovalModelFromDomain(a *sales.StockApproval) *StockApprovalModel {
	m := &StockApprovalModel{
		SalesOrderID: a.SalesOrderID,
		Status:       a.Status,
		ApprovedBy:   a.ApprovedBy,
		ApprovedAt:   a.ApprovedAt,
		Notes:        a.Notes,
	}
	m.FromDomainOwnedEntity(a.OwnedEntity)
	return m
}
