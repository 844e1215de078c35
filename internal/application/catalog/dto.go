package catalog

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest carries the product form for create and update
type ProductRequest struct {
	Name            string          `json:"name" binding:"required,max=200"`
	SKU             string          `json:"sku" binding:"max=100"`
	Catalogue       string          `json:"catalogue" binding:"max=200"`
	CategoryID      *uuid.UUID      `json:"category_id"`
	Description     string          `json:"description" binding:"max=5000"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	QuantityInStock int             `json:"quantity_in_stock" binding:"min=0"`
	Weight          decimal.Decimal `json:"weight"`
	WeightUnit      string          `json:"weight_unit" binding:"omitempty,oneof=kg g lb l ml pcs"`
}

// ProductResponse is a product returned to clients
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Catalogue       string          `json:"catalogue"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	Profit          decimal.Decimal `json:"profit"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Weight          decimal.Decimal `json:"weight"`
	WeightUnit      string          `json:"weight_unit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListFilter filters the product list
type ProductListFilter struct {
	query.List
	CategoryID *uuid.UUID `form:"category_id"`
	Catalogue  string     `form:"catalogue"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		SKU:             p.SKU,
		Catalogue:       p.Catalogue,
		CategoryID:      p.CategoryID,
		Description:     p.Description,
		UnitPrice:       p.UnitPrice,
		CostPrice:       p.CostPrice,
		Profit:          p.Profit(),
		QuantityInStock: p.QuantityInStock,
		Weight:          p.Weight,
		WeightUnit:      string(p.WeightUnit),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// CategoryRequest carries the category form
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// CategoryResponse is a category returned to clients
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryListFilter filters the category list
type CategoryListFilter struct {
	query.List
}

// ToCategoryResponse converts a domain Category
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// PriceBookRequest carries the price book form
type PriceBookRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	IsActive    *bool  `json:"is_active"`
}

// PriceBookItemRequest lists a product in a price book
type PriceBookItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	ListPrice decimal.Decimal `json:"list_price"`
}

// PriceBookItemResponse is a listed product
type PriceBookItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	ListPrice decimal.Decimal `json:"list_price"`
}

// PriceBookResponse is a price book returned to clients
type PriceBookResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	IsActive    bool                    `json:"is_active"`
	Items       []PriceBookItemResponse `json:"items"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// PriceBookListFilter filters the price book list
type PriceBookListFilter struct {
	query.List
	IsActive *bool `form:"is_active"`
}

// ToPriceBookResponse converts a domain PriceBook
func ToPriceBookResponse(pb *catalog.PriceBook) PriceBookResponse {
	items := make([]PriceBookItemResponse, 0, len(pb.Items))
	for _, item := range pb.Items {
		items = append(items, PriceBookItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			ListPrice: item.ListPrice,
		})
	}
	return PriceBookResponse{
		ID:          pb.ID,
		Name:        pb.Name,
		Description: pb.Description,
		IsActive:    pb.IsActive,
		Items:       items,
		CreatedAt:   pb.CreatedAt,
		UpdatedAt:   pb.UpdatedAt,
	}
}
