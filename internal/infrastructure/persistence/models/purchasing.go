package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	OwnedModel
	Name      string `gorm:"type:varchar(200);not null"`
	Email     string `gorm:"type:varchar(200)"`
	Phone     string `gorm:"type:varchar(50)"`
	Company   string `gorm:"type:varchar(200)"`
	Address   string `gorm:"type:text"`
	GSTNumber string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *purchasing.Vendor {
	return &purchasing.Vendor{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Company:     m.Company,
		Address:     m.Address,
		GSTNumber:   m.GSTNumber,
	}
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *purchasing.Vendor) *VendorModel {
	m := &VendorModel{
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Company:   v.Company,
		Address:   v.Address,
		GSTNumber: v.GSTNumber,
	}
	m.FromDomainOwnedEntity(v.OwnedEntity)
	return m
}

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate.
type PurchaseOrderModel struct {
	OwnedModel
	PONumber             string                   `gorm:"column:po_number;type:varchar(50);not null;index"`
	VendorID             uuid.UUID                `gorm:"type:uuid;not null;index"`
	OrderDate            time.Time                `gorm:"type:date;not null"`
	ExpectedDeliveryDate *time.Time               `gorm:"type:date"`
	Status               purchasing.POStatus      `gorm:"type:varchar(20);not null;index"`
	Notes                string                   `gorm:"type:text"`
	Subtotal             decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount            decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount       decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount          decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	Items                []PurchaseOrderItemModel `gorm:"foreignKey:PurchaseOrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *purchasing.PurchaseOrder {
	po := &purchasing.PurchaseOrder{
		OwnedEntity:          m.ToOwnedEntity(),
		PONumber:             m.PONumber,
		VendorID:             m.VendorID,
		OrderDate:            m.OrderDate,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Status:               m.Status,
		Notes:                m.Notes,
		Subtotal:             m.Subtotal,
		TaxAmount:            m.TaxAmount,
		DiscountAmount:       m.DiscountAmount,
		TotalAmount:          m.TotalAmount,
		Items:                make([]purchasing.POItem, len(m.Items)),
	}
	for i, it := range m.Items {
		po.Items[i] = purchasing.POItem{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxPercent:  it.TaxPercent,
			Amount:      it.Amount,
		}
	}
	return po
}

// PurchaseOrderModelFromDomain creates a new persistence model from a domain PurchaseOrder.
func PurchaseOrderModelFromDomain(po *purchasing.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		PONumber:             po.PONumber,
		VendorID:             po.VendorID,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		Status:               po.Status,
		Notes:                po.Notes,
		Subtotal:             po.Subtotal,
		TaxAmount:            po.TaxAmount,
		DiscountAmount:       po.DiscountAmount,
		TotalAmount:          po.TotalAmount,
		Items:                make([]PurchaseOrderItemModel, len(po.Items)),
	}
	m.FromDomainOwnedEntity(po.OwnedEntity)
	for i, it := range po.Items {
		m.Items[i] = PurchaseOrderItemModel{
			ID:              it.ID,
			PurchaseOrderID: po.ID,
			ProductID:       it.ProductID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			TaxPercent:      it.TaxPercent,
			Amount:          it.Amount,
			Position:        i,
		}
	}
	return m
}

// PurchaseOrderItemModel is one line of a purchase order.
type PurchaseOrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:varchar(500)"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxPercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Position        int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}
