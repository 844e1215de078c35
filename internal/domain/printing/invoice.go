package printing

import (
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind selects what is being printed
type DocumentKind string

const (
	KindInvoice   DocumentKind = "invoice"
	KindQuotation DocumentKind = "quotation"
)

// ParseKind validates a document kind; empty means invoice
func ParseKind(s string) (DocumentKind, error) {
	switch k := DocumentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindInvoice, nil
	case KindInvoice, KindQuotation:
		return k, nil
	}
	return "", shared.InvalidInput("Document kind must be invoice or quotation")
}

// Title is the heading printed at the top of the document
func (k DocumentKind) Title() string {
	if k == KindQuotation {
		return "QUOTATION"
	}
	return "INVOICE"
}

// CompanyHeader is the seller block
type CompanyHeader struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	CityLine   string
	LogoURL    string
	TaxID      string
	GSTNumber  string
	CINNumber  string
	BrandColor string
}

// NewCompanyHeader copies the settings, keeping only the identifiers marked as shown
func NewCompanyHeader(s *company.Settings) CompanyHeader {
	h := CompanyHeader{
		Name:       s.DisplayName(),
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		CityLine:   s.CityLine(),
		LogoURL:    s.LogoURL,
		BrandColor: s.BrandColor,
	}
	if h.BrandColor == "" {
		h.BrandColor = company.DefaultBrandColor
	}
	if s.ShowTaxID {
		h.TaxID = s.TaxID
	}
	if s.ShowGSTNumber {
		h.GSTNumber = s.GSTNumber
	}
	if s.ShowCINNumber {
		h.CINNumber = s.CINNumber
	}
	return h
}

// BillTo is the buyer block
type BillTo struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	CityLine  string
	GSTNumber string
}

// NewBillTo copies the customer's contact and address
func NewBillTo(c *crm.Customer) BillTo {
	return BillTo{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CityLine:  c.CityLine(),
		GSTNumber: c.GSTNumber,
	}
}

// Line is one printed line
type Line struct {
	Number      int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CGSTAmount  decimal.Decimal
	SGSTAmount  decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceView is everything a template needs to print one document
type InvoiceView struct {
	ID             uuid.UUID
	Kind           DocumentKind
	Title          string
	Number         string
	Date           time.Time
	DueDate        *time.Time
	Status         string
	Template       company.InvoiceTemplate
	Company        CompanyHeader
	BillTo         BillTo
	Lines          []Line
	Subtotal       decimal.Decimal
	CGSTPercent    decimal.Decimal
	SGSTPercent    decimal.Decimal
	CGSTAmount     decimal.Decimal
	SGSTAmount     decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Notes          string
}

// HasDiscount reports a non-zero discount
func (v *InvoiceView) HasDiscount() bool { return !v.DiscountAmount.IsZero() }

// DueLabel names the due date of the document kind
func (v *InvoiceView) DueLabel() string {
	if v.Kind == KindQuotation {
		return "Valid Until"
	}
	return "Due Date"
}

func newView(kind DocumentKind, settings *company.Settings, customer *crm.Customer, items []sales.LineItem, totals sales.Totals) *InvoiceView {
	v := &InvoiceView{
		Kind:           kind,
		Title:          kind.Title(),
		Template:       settings.InvoiceTemplate,
		Company:        NewCompanyHeader(settings),
		BillTo:         NewBillTo(customer),
		Lines:          make([]Line, 0, len(items)),
		Subtotal:       totals.Subtotal,
		CGSTPercent:    totals.CGSTPercent,
		SGSTPercent:    totals.SGSTPercent,
		CGSTAmount:     decimal.Zero,
		SGSTAmount:     decimal.Zero,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
	}
	if !v.Template.IsValid() {
		v.Template = company.TemplateClassic
	}
	for i, it := range items {
		v.Lines = append(v.Lines, Line{
			Number:      i + 1,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CGSTAmount:  it.CGSTAmount,
			SGSTAmount:  it.SGSTAmount,
			Amount:      it.Amount,
		})
		v.CGSTAmount = v.CGSTAmount.Add(it.CGSTAmount)
		v.SGSTAmount = v.SGSTAmount.Add(it.SGSTAmount)
	}
	return v
}

// FromSalesOrder builds the invoice of an order. The subtotal is derived from
// the stored totals as total - tax + discount.
func FromSalesOrder(o *sales.SalesOrder, customer *crm.Customer, settings *company.Settings) *InvoiceView {
	v := newView(KindInvoice, settings, customer, o.Items, o.Totals)
	v.ID = o.ID
	v.Number = o.OrderNumber
	v.Date = o.OrderDate
	v.DueDate = o.ExpectedDeliveryDate
	v.Status = string(o.Status)
	v.Notes = o.Notes
	v.Subtotal = o.InvoiceSubtotal()
	return v
}

// FromQuotation builds the printable quotation
func FromQuotation(q *sales.Quotation, customer *crm.Customer, settings *company.Settings) *InvoiceView {
	v := newView(KindQuotation, settings, customer, q.Items, q.Totals)
	v.ID = q.ID
	v.Number = q.QuotationNumber
	v.Date = q.QuotationDate
	v.DueDate = q.ValidUntil
	v.Status = string(q.Status)
	v.Notes = q.Notes
	return v
}
