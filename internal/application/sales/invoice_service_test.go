package sales

import (
	"context"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/printing"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRenderer struct {
	template company.InvoiceTemplate
	view     *printing.InvoiceView
}

func (f *fakeRenderer) RenderHTML(_ context.Context, tpl company.InvoiceTemplate, view *printing.InvoiceView) ([]byte, error) {
	f.template = tpl
	f.view = view
	return []byte("<html>" + view.Number + "</html>"), nil
}

type fakePDF struct{}

func (fakePDF) HTMLToPDF(_ context.Context, html []byte) ([]byte, error) {
	return append([]byte("%PDF-"), html...), nil
}

type fakeArchive struct {
	keys []string
}

func (f *fakeArchive) Upload(_ context.Context, key string, _ []byte, _ string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeArchive) PresignGet(_ context.Context, key string) (string, error) {
	return "https://bucket.example/" + key + "?sig=1", nil
}

type invoiceFixture struct {
	userID   uuid.UUID
	order    *sales.SalesOrder
	customer *crm.Customer
	orders   *mocks.SalesOrderRepository
	settings *mocks.SettingsRepository
	renderer *fakeRenderer
}

func newInvoiceFixture(t *testing.T) invoiceFixture {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()
	customer, err := crm.NewCustomer(userID, "Acme")
	require.NoError(t, err)
	order, err := sales.NewSalesOrder(userID, customer.ID, "SO-42", time.Now())
	require.NoError(t, err)
	require.NoError(t, order.ReplaceItems([]sales.LineInput{
		{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
	}, decimal.Zero))

	orders := new(mocks.SalesOrderRepository)
	orders.On("FindByID", ctx, userID, order.ID).Return(order, nil)

	return invoiceFixture{
		userID:   userID,
		order:    order,
		customer: customer,
		orders:   orders,
		settings: new(mocks.SettingsRepository),
		renderer: &fakeRenderer{},
	}
}

func (f invoiceFixture) service(pdf PDFConverter, archive DocumentArchive) *InvoiceService {
	customers := new(mocks.CustomerRepository)
	customers.On("FindByID", context.Background(), f.userID, f.customer.ID).Return(f.customer, nil)
	return NewInvoiceService(new(mocks.QuotationRepository), f.orders, customers, f.settings, f.renderer, pdf, archive, zap.NewNop())
}

func TestInvoiceService_RenderInvoice_HTML(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)
	stored := company.DefaultSettings(f.userID)
	stored.InvoiceTemplate = company.TemplateCompact
	f.settings.On("FindByUser", ctx, f.userID).Return(stored, nil)

	doc, err := f.service(nil, nil).RenderInvoice(ctx, f.userID, f.order.ID, RenderInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "invoice-SO-42.html", doc.Filename)
	assert.Equal(t, "<html>SO-42</html>", string(doc.Data))
	assert.Equal(t, company.TemplateCompact, f.renderer.template)
	assert.Equal(t, "INVOICE", f.renderer.view.Title)
}

func TestInvoiceService_RenderInvoice_TemplateOverride(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)
	f.settings.On("FindByUser", ctx, f.userID).Return(nil, shared.NotFound("Company settings"))

	_, err := f.service(nil, nil).RenderInvoice(ctx, f.userID, f.order.ID, RenderInvoiceRequest{Template: "t5"})
	require.NoError(t, err)
	assert.Equal(t, company.TemplateElegant, f.renderer.template)
	assert.Equal(t, company.DefaultCompanyName, f.renderer.view.Company.Name)
}

func TestInvoiceService_RenderInvoice_PDF(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.settings.On("FindByUser", ctx, f.userID).Return(company.DefaultSettings(f.userID), nil)

		_, err := f.service(nil, nil).RenderInvoice(ctx, f.userID, f.order.ID, RenderInvoiceRequest{Format: "pdf"})
		assert.ErrorIs(t, err, ErrPDFDisabled)
	})

	t.Run("archive without storage", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.settings.On("FindByUser", ctx, f.userID).Return(company.DefaultSettings(f.userID), nil)

		_, err := f.service(fakePDF{}, nil).RenderInvoice(ctx, f.userID, f.order.ID, RenderInvoiceRequest{Format: "pdf", Archive: true})
		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})

	t.Run("archived with presigned link", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.settings.On("FindByUser", ctx, f.userID).Return(company.DefaultSettings(f.userID), nil)
		archive := &fakeArchive{}

		doc, err := f.service(fakePDF{}, archive).RenderInvoice(ctx, f.userID, f.order.ID, RenderInvoiceRequest{Format: "pdf", Archive: true})
		require.NoError(t, err)
		assert.Equal(t, "invoice-SO-42.pdf", doc.Filename)
		assert.Equal(t, "application/pdf", doc.ContentType)
		assert.Equal(t, "%PDF-<html>SO-42</html>", string(doc.Data))
		require.Len(t, archive.keys, 1)
		assert.Contains(t, archive.keys[0], "documents/"+f.userID.String()+"/invoice/invoice-SO-42-")
		assert.Contains(t, doc.ArchiveURL, "?sig=1")
	})
}
