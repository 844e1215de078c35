package shared

import "github.com/shopspring/decimal"

// ValidateStockQuantity rejects fractional quantities on lines that move
// product stock, which is counted in whole units.
func ValidateStockQuantity(qty decimal.Decimal) error {
	if !qty.IsInteger() {
		return NewDomainError("INVALID_QUANTITY", "Quantity of a stocked product must be a whole number")
	}
	return nil
}
