package catalog

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeightUnit is the unit a product's weight or volume is expressed in
type WeightUnit string

const (
	WeightUnitKg  WeightUnit = "kg"
	WeightUnitG   WeightUnit = "g"
	WeightUnitLb  WeightUnit = "lb"
	WeightUnitL   WeightUnit = "l"
	WeightUnitMl  WeightUnit = "ml"
	WeightUnitPcs WeightUnit = "pcs"
)

// IsValid reports whether u is a supported unit
func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitKg, WeightUnitG, WeightUnitLb, WeightUnitL, WeightUnitMl, WeightUnitPcs:
		return true
	}
	return false
}

// Product codes
const (
	CodeDuplicateProduct = "ALREADY_EXISTS"
	MsgDuplicateProduct  = "Product with this name already exists"
	CodeProductInUse     = "INVALID_STATE"
	MsgProductInUse      = "Product is referenced by existing documents and cannot be deleted"
)

// ErrDuplicateProductName is returned when a user already has a product with the same name
var ErrDuplicateProductName = shared.NewDomainError(CodeDuplicateProduct, MsgDuplicateProduct)

// ErrProductInUse is returned when deleting a product that documents still reference
var ErrProductInUse = shared.NewDomainError(CodeProductInUse, MsgProductInUse)

// Product is a sellable item with its prices and stock on hand
type Product struct {
	shared.OwnedEntity
	Name            string
	SKU             string
	Catalogue       string
	CategoryID      *uuid.UUID
	Description     string
	UnitPrice       decimal.Decimal
	CostPrice       decimal.Decimal
	QuantityInStock int
	Weight          decimal.Decimal
	WeightUnit      WeightUnit
}

// NewProduct creates a product with zero prices and stock
func NewProduct(userID uuid.UUID, name string) (*Product, error) {
	p := &Product{
		OwnedEntity: shared.NewOwnedEntity(userID),
		UnitPrice:   decimal.Zero,
		CostPrice:   decimal.Zero,
		Weight:      decimal.Zero,
		WeightUnit:  WeightUnitKg,
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename sets the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetPrices sets the selling and cost prices
func (p *Product) SetPrices(unitPrice, costPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.CostPrice = costPrice
	p.Touch()
	return nil
}

// SetWeight sets weight and unit; an empty unit means kg
func (p *Product) SetWeight(weight decimal.Decimal, unit WeightUnit) error {
	if unit == "" {
		unit = WeightUnitKg
	}
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_WEIGHT_UNIT", "Unsupported weight unit: "+string(unit))
	}
	if weight.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	p.Weight = weight
	p.WeightUnit = unit
	p.Touch()
	return nil
}

// SetStock sets the quantity on hand
func (p *Product) SetStock(qty int) error {
	if qty < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	p.QuantityInStock = qty
	p.Touch()
	return nil
}

// AddStock increases stock by qty
func (p *Product) AddStock(qty int) {
	if qty <= 0 {
		return
	}
	p.QuantityInStock += qty
	p.Touch()
}

// DeductStock removes qty from stock, flooring at zero
func (p *Product) DeductStock(qty int) {
	if qty <= 0 {
		return
	}
	p.QuantityInStock -= qty
	if p.QuantityInStock < 0 {
		p.QuantityInStock = 0
	}
	p.Touch()
}

// Profit is unit price minus cost price
func (p *Product) Profit() decimal.Decimal {
	return p.UnitPrice.Sub(p.CostPrice)
}

// IsOutOfStock reports zero stock
func (p *Product) IsOutOfStock() bool {
	return p.QuantityInStock <= 0
}
