package sales

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a GST-taxed document line
type LineItem struct {
	ID          uuid.UUID
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	Amount      decimal.Decimal
}

// Subtotal is quantity times unit price
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice).Round(shared.AmountPlaces)
}

// StockQuantity is the quantity moved in or out of stock. Product lines
// hold whole numbers only, so nothing is lost.
func (l LineItem) StockQuantity() int {
	return int(l.Quantity.IntPart())
}

// LineInput is an unpriced line as entered by the user.
// Nil percents fall back to the defaults passed to BuildLines.
type LineInput struct {
	ProductID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CGSTPercent *decimal.Decimal
	SGSTPercent *decimal.Decimal
}

// Totals is the header roll-up stored on quotations and sales orders
type Totals struct {
	Subtotal       decimal.Decimal
	CGSTPercent    decimal.Decimal
	SGSTPercent    decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ErrNoLineItems is returned when a document has no line with a description
var ErrNoLineItems = shared.NewDomainError("INVALID_INPUT", "At least one line item with a description is required")

// BuildLines computes every line with the GST calculator and returns the lines
// and header totals. Lines with a blank description are dropped; lines with a
// product must carry a whole quantity.
func BuildLines(inputs []LineInput, discount, defaultCGST, defaultSGST decimal.Decimal) ([]LineItem, Totals, error) {
	if discount.IsNegative() {
		return nil, Totals{}, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	items := make([]LineItem, 0, len(inputs))
	calc := make([]shared.GSTLine, 0, len(inputs))
	for _, in := range inputs {
		desc := strings.TrimSpace(in.Description)
		if desc == "" {
			continue
		}
		if in.Quantity.IsNegative() {
			return nil, Totals{}, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
		}
		if in.UnitPrice.IsNegative() {
			return nil, Totals{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		if in.ProductID != nil {
			if err := shared.ValidateStockQuantity(in.Quantity); err != nil {
				return nil, Totals{}, err
			}
		}
		cgst := defaultCGST
		if in.CGSTPercent != nil {
			cgst = *in.CGSTPercent
		}
		sgst := defaultSGST
		if in.SGSTPercent != nil {
			sgst = *in.SGSTPercent
		}
		if err := shared.ValidateTaxPercent(cgst); err != nil {
			return nil, Totals{}, err
		}
		if err := shared.ValidateTaxPercent(sgst); err != nil {
			return nil, Totals{}, err
		}

		line := shared.CalculateGSTLine(in.Quantity, in.UnitPrice, cgst, sgst)
		calc = append(calc, line)
		items = append(items, LineItem{
			ID:          uuid.New(),
			ProductID:   in.ProductID,
			Description: desc,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			CGSTPercent: cgst,
			SGSTPercent: sgst,
			CGSTAmount:  line.CGSTAmount,
			SGSTAmount:  line.SGSTAmount,
			Amount:      line.Amount,
		})
	}
	if len(items) == 0 {
		return nil, Totals{}, ErrNoLineItems
	}

	sum := shared.SumGSTLines(calc, discount)
	return items, Totals{
		Subtotal:       sum.Subtotal,
		CGSTPercent:    sum.CGSTPercent,
		SGSTPercent:    sum.SGSTPercent,
		TaxAmount:      sum.TaxAmount,
		DiscountAmount: sum.Discount,
		TotalAmount:    sum.Total,
	}, nil
}

// ToInputs turns priced lines back into inputs, keeping their percents
func ToInputs(items []LineItem) []LineInput {
	out := make([]LineInput, len(items))
	for i, it := range items {
		cgst, sgst := it.CGSTPercent, it.SGSTPercent
		out[i] = LineInput{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CGSTPercent: &cgst,
			SGSTPercent: &sgst,
		}
	}
	return out
}
