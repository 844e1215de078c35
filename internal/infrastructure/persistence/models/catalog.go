package models

import (
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	OwnedModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category entity.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Description: c.Description}
	m.FromDomainOwnedEntity(c.OwnedEntity)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	OwnedModel
	Name            string             `gorm:"type:varchar(200);not null"`
	SKU             string             `gorm:"column:sku;type:varchar(100)"`
	Catalogue       string             `gorm:"type:varchar(100);index"`
	CategoryID      *uuid.UUID         `gorm:"type:uuid;index"`
	Description     string             `gorm:"type:text"`
	UnitPrice       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	CostPrice       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	QuantityInStock int                `gorm:"not null;default:0"`
	Weight          decimal.Decimal    `gorm:"type:decimal(18,3);not null;default:0"`
	WeightUnit      catalog.WeightUnit `gorm:"type:varchar(10);not null;default:'kg'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		OwnedEntity:     m.ToOwnedEntity(),
		Name:            m.Name,
		SKU:             m.SKU,
		Catalogue:       m.Catalogue,
		CategoryID:      m.CategoryID,
		Description:     m.Description,
		UnitPrice:       m.UnitPrice,
		CostPrice:       m.CostPrice,
		QuantityInStock: m.QuantityInStock,
		Weight:          m.Weight,
		WeightUnit:      m.WeightUnit,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:            p.Name,
		SKU:             p.SKU,
		Catalogue:       p.Catalogue,
		CategoryID:      p.CategoryID,
		Description:     p.Description,
		UnitPrice:       p.UnitPrice,
		CostPrice:       p.CostPrice,
		QuantityInStock: p.QuantityInStock,
		Weight:          p.Weight,
		WeightUnit:      p.WeightUnit,
	}
	m.FromDomainOwnedEntity(p.OwnedEntity)
	return m
}

// PriceBookModel is the persistence model for the PriceBook aggregate.
type PriceBookModel struct {
	OwnedModel
	Name        string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text"`
	IsActive    bool                 `gorm:"not null;default:true;index"`
	Items       []PriceBookItemModel `gorm:"foreignKey:PriceBookID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PriceBookModel) TableName() string {
	return "price_books"
}

// ToDomain converts the persistence model to a domain PriceBook.
func (m *PriceBookModel) ToDomain() *catalog.PriceBook {
	pb := &catalog.PriceBook{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		Items:       make([]catalog.PriceBookItem, len(m.Items)),
	}
	for i, it := range m.Items {
		pb.Items[i] = catalog.PriceBookItem{
			ID:          it.ID,
			PriceBookID: it.PriceBookID,
			ProductID:   it.ProductID,
			ListPrice:   it.ListPrice,
		}
	}
	return pb
}

// PriceBookModelFromDomain creates a new persistence model from a domain PriceBook.
func PriceBookModelFromDomain(pb *catalog.PriceBook) *PriceBookModel {
	m := &PriceBookModel{
		Name:        pb.Name,
		Description: pb.Description,
		IsActive:    pb.IsActive,
		Items:       make([]PriceBookItemModel, len(pb.Items)),
	}
	m.FromDomainOwnedEntity(pb.OwnedEntity)
	for i, it := range pb.Items {
		m.Items[i] = PriceBookItemModel{
			ID:          it.ID,
			PriceBookID: pb.ID,
			ProductID:   it.ProductID,
			ListPrice:   it.ListPrice,
		}
	}
	return m
}

// PriceBookItemModel is one product price within a price book.
type PriceBookItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PriceBookID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_book_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_price_book_product,priority:2"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PriceBookItemModel) TableName() string {
	return "price_book_items"
}
