package shared

import (
	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places kept on stored money amounts.
const AmountPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	// DefaultCGSTPercent is applied to a line when no CGST rate is given
	DefaultCGSTPercent = decimal.NewFromInt(9)
	// DefaultSGSTPercent is applied to a line when no SGST rate is given
	DefaultSGSTPercent = decimal.NewFromInt(9)
	// DefaultPurchaseTaxPercent is the single tax rate used on purchase order lines
	DefaultPurchaseTaxPercent = decimal.NewFromInt(18)
)

// GSTLine is one line item with its CGST/SGST breakdown.
type GSTLine struct {
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
	Subtotal    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	Amount      decimal.Decimal
}

// GSTTotals is the header roll-up of a set of GST lines.
type GSTTotals struct {
	Subtotal    decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	TaxAmount   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	CGSTPercent decimal.Decimal
	SGSTPercent decimal.Decimal
}

// ValidateTaxPercent checks a percent lies within [0, 100]
func ValidateTaxPercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return NewDomainError("INVALID_TAX_RATE", "Tax percent must be between 0 and 100")
	}
	return nil
}

// CalculateGSTLine computes sub = qty*price, cgst = sub*cgst%/100,
// sgst = sub*sgst%/100 and amount = sub+cgst+sgst.
func CalculateGSTLine(qty, unitPrice, cgstPercent, sgstPercent decimal.Decimal) GSTLine {
	sub := qty.Mul(unitPrice).Round(AmountPlaces)
	cgst := sub.Mul(cgstPercent).Div(hundred).Round(AmountPlaces)
	sgst := sub.Mul(sgstPercent).Div(hundred).Round(AmountPlaces)
	return GSTLine{
		Quantity:    qty,
		UnitPrice:   unitPrice,
		CGSTPercent: cgstPercent,
		SGSTPercent: sgstPercent,
		Subtotal:    sub,
		CGSTAmount:  cgst,
		SGSTAmount:  sgst,
		Amount:      sub.Add(cgst).Add(sgst),
	}
}

// SumGSTLines aggregates lines into header totals.
// Total is always Subtotal + TaxAmount - Discount. The header percents are the
// effective rates over the subtotal and are zero when the subtotal is zero.
func SumGSTLines(lines []GSTLine, discount decimal.Decimal) GSTTotals {
	t := GSTTotals{
		Subtotal:    decimal.Zero,
		CGSTAmount:  decimal.Zero,
		SGSTAmount:  decimal.Zero,
		CGSTPercent: decimal.Zero,
		SGSTPercent: decimal.Zero,
		Discount:    discount,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.CGSTAmount = t.CGSTAmount.Add(l.CGSTAmount)
		t.SGSTAmount = t.SGSTAmount.Add(l.SGSTAmount)
	}
	t.TaxAmount = t.CGSTAmount.Add(t.SGSTAmount)
	t.Total = t.Subtotal.Add(t.TaxAmount).Sub(discount)
	if !t.Subtotal.IsZero() {
		t.CGSTPercent = t.CGSTAmount.Div(t.Subtotal).Mul(hundred).Round(AmountPlaces)
		t.SGSTPercent = t.SGSTAmount.Div(t.Subtotal).Mul(hundred).Round(AmountPlaces)
	}
	return t
}

// SimpleTaxLine is a line taxed with one combined rate.
type SimpleTaxLine struct {
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Amount     decimal.Decimal
}

// CalculateSimpleTaxLine computes line = qty*price, tax = line*pct/100, amount = line+tax.
func CalculateSimpleTaxLine(qty, unitPrice, taxPercent decimal.Decimal) SimpleTaxLine {
	sub := qty.Mul(unitPrice).Round(AmountPlaces)
	tax := sub.Mul(taxPercent).Div(hundred).Round(AmountPlaces)
	return SimpleTaxLine{
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TaxPercent: taxPercent,
		Subtotal:   sub,
		TaxAmount:  tax,
		Amount:     sub.Add(tax),
	}
}

// SimpleTaxTotals aggregates single-rate lines.
type SimpleTaxTotals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// SumSimpleTaxLines returns subtotal, tax and total = subtotal + tax - discount
func SumSimpleTaxLines(lines []SimpleTaxLine, discount decimal.Decimal) SimpleTaxTotals {
	t := SimpleTaxTotals{Subtotal: decimal.Zero, TaxAmount: decimal.Zero, Discount: discount}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal)
		t.TaxAmount = t.TaxAmount.Add(l.TaxAmount)
	}
	t.Total = t.Subtotal.Add(t.TaxAmount).Sub(discount)
	return t
}
