package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/printing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *printing.InvoiceView {
	due := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	return &printing.InvoiceView{
		Kind:     printing.KindInvoice,
		Title:    printing.KindInvoice.Title(),
		Number:   "SO-1718000000000",
		Date:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:  &due,
		Status:   "partially_paid",
		Template: company.TemplateClassic,
		Company: printing.CompanyHeader{
			Name:       "Acme Traders",
			CityLine:   "Pune, Maharashtra 411001",
			GSTNumber:  "27AAPFU0939F1ZV",
			BrandColor: "#1f2937",
		},
		BillTo: printing.BillTo{Name: "Globex <Ltd>"},
		Lines: []printing.Line{{
			Number:      1,
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(61728),
			CGSTAmount:  decimal.RequireFromString("11111.04"),
			SGSTAmount:  decimal.RequireFromString("11111.04"),
			Amount:      decimal.NewFromInt(123456),
		}},
		Subtotal:       decimal.NewFromInt(123456),
		CGSTPercent:    decimal.NewFromInt(9),
		SGSTPercent:    decimal.NewFromInt(9),
		CGSTAmount:     decimal.RequireFromString("11111.04"),
		SGSTAmount:     decimal.RequireFromString("11111.04"),
		TaxAmount:      decimal.RequireFromString("22222.08"),
		DiscountAmount: decimal.Zero,
		TotalAmount:    decimal.RequireFromString("145678.08"),
	}
}

func TestTemplateEngine_RendersEveryLayout(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	for _, def := range GetDefaultTemplates() {
		t.Run(string(def.ID), func(t *testing.T) {
			html, err := engine.RenderHTML(context.Background(), def.ID, sampleView())
			require.NoError(t, err)

			out := string(html)
			assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
			assert.Contains(t, out, "INVOICE")
			assert.Contains(t, out, "SO-1718000000000")
			assert.Contains(t, out, "₹1,45,678.08")
			assert.Contains(t, out, "₹1,23,456")
			assert.Contains(t, out, "01-04-2026")
			assert.Contains(t, out, "Due Date")
			assert.Contains(t, out, "30-04-2026")
			assert.Contains(t, out, "Partially Paid")
			assert.Contains(t, out, "GSTIN: 27AAPFU0939F1ZV")
			assert.Contains(t, out, "CGST (9%)")
			assert.Contains(t, out, "Globex &lt;Ltd&gt;")
			assert.NotContains(t, out, "Discount")
		})
	}
}

func TestTemplateEngine_DiscountAndQuotation(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	view := sampleView()
	view.Kind = printing.KindQuotation
	view.Title = view.Kind.Title()
	view.DiscountAmount = decimal.NewFromInt(500)

	html, err := engine.RenderHTML(context.Background(), company.TemplateModern, view)
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "QUOTATION")
	assert.Contains(t, out, "Quotation No.")
	assert.Contains(t, out, "Valid Until")
	assert.Contains(t, out, "-₹500")
}

func TestTemplateEngine_EmptyLines(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	view := sampleView()
	view.Lines = nil
	html, err := engine.RenderHTML(context.Background(), company.TemplateMinimal, view)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No items")
}

func TestTemplateEngine_Errors(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	_, err = engine.RenderHTML(context.Background(), company.InvoiceTemplate("t9"), sampleView())
	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeUnknownTemplate, renderErr.Code)

	_, err = engine.RenderHTML(context.Background(), company.TemplateClassic, nil)
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestTemplateFuncs(t *testing.T) {
	assert.Equal(t, "₹1,000.5", formatMoney(decimal.RequireFromString("1000.499")))
	assert.Equal(t, "2.5%", formatPercent(decimal.RequireFromString("2.5")))
	assert.Equal(t, "Invoice", titleCase(printing.KindInvoice))
	assert.Equal(t, "Closed Won", statusLabel("closed_won"))
}
