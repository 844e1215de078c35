package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	appsales "github.com/crmdesk/backend/internal/application/sales"
	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/printing"
	"github.com/crmdesk/backend/internal/infrastructure/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders invoice views with the embedded layouts. Templates
// are parsed once at construction and are safe for concurrent use.
type TemplateEngine struct {
	funcMap   template.FuncMap
	templates map[company.InvoiceTemplate]*template.Template
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		for name, fn := range funcs {
			e.funcMap[name] = fn
		}
	}
}

// NewTemplateEngine parses every built-in layout
func NewTemplateEngine(opts ...TemplateEngineOption) (*TemplateEngine, error) {
	e := &TemplateEngine{
		funcMap: template.FuncMap{
			"money":   formatMoney,
			"number":  format.FormatIndianNumber,
			"percent": formatPercent,
			"date":    format.FormatLocalDate,
			"datePtr": format.FormatLocalDatePtr,
			"title":   titleCase,
			"label":   statusLabel,
			"upper":   strings.ToUpper,
		},
		templates: make(map[company.InvoiceTemplate]*template.Template),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, def := range GetDefaultTemplates() {
		tpl, err := template.New(string(def.ID)).Funcs(e.funcMap).ParseFS(templateFS, partialsFile, def.FilePath)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", def.ID, err)
		}
		e.templates[def.ID] = tpl
	}
	return e, nil
}

// RenderHTML executes the layout tpl against view and returns a complete HTML document
func (e *TemplateEngine) RenderHTML(_ context.Context, tpl company.InvoiceTemplate, view *printing.InvoiceView) ([]byte, error) {
	if view == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "invoice view is nil", nil)
	}
	t, ok := e.templates[tpl]
	if !ok {
		return nil, NewRenderError(ErrCodeUnknownTemplate, "unknown invoice template: "+string(tpl), nil)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "document", view); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "template execution failed", err)
	}
	return buf.Bytes(), nil
}

func formatMoney(v decimal.Decimal) string {
	return format.FormatIndianCurrency(v.Round(2))
}

func formatPercent(v decimal.Decimal) string {
	return format.FormatIndianNumber(v) + "%"
}

var titler = cases.Title(language.English)

// titleCase accepts named string types such as printing.DocumentKind
func titleCase(v any) string {
	return titler.String(fmt.Sprint(v))
}

// statusLabel turns a stored status such as "partially_paid" into "Partially Paid"
func statusLabel(v any) string {
	return titleCase(strings.ReplaceAll(fmt.Sprint(v), "_", " "))
}

var _ appsales.InvoiceRenderer = (*TemplateEngine)(nil)
