package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/printing"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Output formats of a rendered document
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ErrPDFDisabled is returned when no PDF converter is configured
var ErrPDFDisabled = shared.NewDomainError("PDF_DISABLED", "PDF rendering is not configured")

// ErrArchiveDisabled is returned when archiving is requested without object storage
var ErrArchiveDisabled = shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")

// InvoiceRenderer renders a view with one of the invoice templates
type InvoiceRenderer interface {
	RenderHTML(ctx context.Context, tpl company.InvoiceTemplate, view *printing.InvoiceView) ([]byte, error)
}

// PDFConverter turns a complete HTML document into a PDF
type PDFConverter interface {
	HTMLToPDF(ctx context.Context, html []byte) ([]byte, error)
}

// DocumentArchive keeps rendered PDFs and hands out temporary download links
type DocumentArchive interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// RenderInvoiceRequest selects the document, template and output format
type RenderInvoiceRequest struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=invoice quotation"`
	Template string `form:"template" binding:"omitempty,oneof=t1 t2 t3 t4 t5"`
	Format   string `form:"format" binding:"omitempty,oneof=html pdf"`
	Archive  bool   `form:"archive"`
}

// RenderedDocument is the output of RenderInvoice
type RenderedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
	// ArchiveURL is a presigned link to the archived PDF, set only when archiving was requested
	ArchiveURL string
}

// InvoiceService renders quotations and sales orders as printable documents
type InvoiceService struct {
	quotationRepo sales.QuotationRepository
	orderRepo     sales.SalesOrderRepository
	customerRepo  crm.CustomerRepository
	settingsRepo  company.SettingsRepository
	renderer      InvoiceRenderer
	pdf           PDFConverter
	archive       DocumentArchive
	logger        *zap.Logger
	now           func() time.Time
}

// NewInvoiceService creates a new InvoiceService. pdf and archive may be nil.
func NewInvoiceService(
	quotationRepo sales.QuotationRepository,
	orderRepo sales.SalesOrderRepository,
	customerRepo crm.CustomerRepository,
	settingsRepo company.SettingsRepository,
	renderer InvoiceRenderer,
	pdf PDFConverter,
	archive DocumentArchive,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		quotationRepo: quotationRepo,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		settingsRepo:  settingsRepo,
		renderer:      renderer,
		pdf:           pdf,
		archive:       archive,
		logger:        logger,
		now:           time.Now,
	}
}

// View builds the invoice view model of a sales order or quotation
func (s *InvoiceService) View(ctx context.Context, userID uuid.UUID, kind printing.DocumentKind, id uuid.UUID) (*printing.InvoiceView, error) {
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		settings = company.DefaultSettings(userID)
	}

	switch kind {
	case printing.KindQuotation:
		q, err := s.quotationRepo.FindByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		customer, err := s.customerRepo.FindByID(ctx, userID, q.CustomerID)
		if err != nil {
			return nil, err
		}
		return printing.FromQuotation(q, customer, settings), nil
	default:
		o, err := s.orderRepo.FindByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		customer, err := s.customerRepo.FindByID(ctx, userID, o.CustomerID)
		if err != nil {
			return nil, err
		}
		return printing.FromSalesOrder(o, customer, settings), nil
	}
}

// RenderInvoice renders the document as HTML or PDF. The template defaults to
// the one chosen in company settings.
func (s *InvoiceService) RenderInvoice(ctx context.Context, userID, id uuid.UUID, req RenderInvoiceRequest) (*RenderedDocument, error) {
	kind, err := printing.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	view, err := s.View(ctx, userID, kind, id)
	if err != nil {
		return nil, err
	}

	tpl := view.Template
	if req.Template != "" {
		tpl = company.InvoiceTemplate(req.Template)
		if !tpl.IsValid() {
			return nil, shared.InvalidInput("Unknown template: " + req.Template)
		}
		view.Template = tpl
	}

	html, err := s.renderer.RenderHTML(ctx, tpl, view)
	if err != nil {
		return nil, fmt.Errorf("render %s %s: %w", kind, view.Number, err)
	}

	base := documentBaseName(view)
	if !strings.EqualFold(req.Format, FormatPDF) {
		return &RenderedDocument{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Data:        html,
		}, nil
	}

	if s.pdf == nil {
		return nil, ErrPDFDisabled
	}
	if req.Archive && s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	pdf, err := s.pdf.HTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("convert %s to pdf: %w", view.Number, err)
	}
	doc := &RenderedDocument{
		Filename:    base + ".pdf",
		ContentType: "application/pdf",
		Data:        pdf,
	}

	if req.Archive {
		key := fmt.Sprintf("documents/%s/%s/%s-%d.pdf", userID, kind, base, s.now().Unix())
		if err := s.archive.Upload(ctx, key, pdf, doc.ContentType); err != nil {
			return nil, fmt.Errorf("archive %s: %w", key, err)
		}
		url, err := s.archive.PresignGet(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		doc.ArchiveURL = url
		s.logger.Info("Document archived",
			zap.String("kind", string(kind)),
			zap.String("number", view.Number),
			zap.String("key", key))
	}
	return doc, nil
}

// documentBaseName is the download name without extension, e.g. "invoice-SO-1718000000000"
func documentBaseName(v *printing.InvoiceView) string {
	number := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, v.Number)
	return string(v.Kind) + "-" + number
}
