// Package company holds the per-user business profile printed on invoices and quotations.
package company

import (
	"context"
	"regexp"
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultBrandColor is used for document headings when none is configured
const DefaultBrandColor = "#F9423A"

// DefaultCompanyName is printed when the company name has not been filled in
const DefaultCompanyName = "Your Company Name"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// gstinPattern matches the 15 character Indian GST identification number
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// InvoiceTemplate selects the layout used to render invoices and quotations
type InvoiceTemplate string

const (
	TemplateClassic InvoiceTemplate = "t1"
	TemplateMinimal InvoiceTemplate = "t2"
	TemplateModern  InvoiceTemplate = "t3"
	TemplateCompact InvoiceTemplate = "t4"
	TemplateElegant InvoiceTemplate = "t5"
)

// AllTemplates lists the templates in display order
var AllTemplates = []InvoiceTemplate{TemplateClassic, TemplateMinimal, TemplateModern, TemplateCompact, TemplateElegant}

// IsValid reports whether t is a known template
func (t InvoiceTemplate) IsValid() bool {
	switch t {
	case TemplateClassic, TemplateMinimal, TemplateModern, TemplateCompact, TemplateElegant:
		return true
	}
	return false
}

// DisplayName returns the human name of the template
func (t InvoiceTemplate) DisplayName() string {
	switch t {
	case TemplateMinimal:
		return "Minimal"
	case TemplateModern:
		return "Modern"
	case TemplateCompact:
		return "Compact"
	case TemplateElegant:
		return "Elegant"
	default:
		return "Classic"
	}
}

// Settings is the company profile of one user
type Settings struct {
	shared.OwnedEntity
	CompanyName     string
	Email           string
	Phone           string
	Address         string
	City            string
	State           string
	PostalCode      string
	LogoURL         string
	TaxID           string
	GSTNumber       string
	CINNumber       string
	BrandColor      string
	ShowTaxID       bool
	ShowGSTNumber   bool
	ShowCINNumber   bool
	InvoiceTemplate InvoiceTemplate
}

// DefaultSettings returns the settings used before the user saves any
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		OwnedEntity:     shared.NewOwnedEntity(userID),
		BrandColor:      DefaultBrandColor,
		InvoiceTemplate: TemplateClassic,
	}
}

// Validate checks the formatted fields
func (s *Settings) Validate() error {
	if s.BrandColor == "" {
		s.BrandColor = DefaultBrandColor
	}
	if !hexColorPattern.MatchString(s.BrandColor) {
		return shared.NewDomainError("INVALID_BRAND_COLOR", "Brand color must be a hex color such as #F9423A")
	}
	if s.InvoiceTemplate == "" {
		s.InvoiceTemplate = TemplateClassic
	}
	if !s.InvoiceTemplate.IsValid() {
		return shared.NewDomainError("INVALID_TEMPLATE", "Invoice template must be one of t1, t2, t3, t4, t5")
	}
	s.GSTNumber = strings.ToUpper(strings.TrimSpace(s.GSTNumber))
	if s.GSTNumber != "" && !IsValidGSTIN(s.GSTNumber) {
		return shared.NewDomainError("INVALID_GST_NUMBER", "GST number must be a 15 character GSTIN")
	}
	return nil
}

// DisplayName returns the company name or the placeholder used on documents
func (s *Settings) DisplayName() string {
	if strings.TrimSpace(s.CompanyName) == "" {
		return DefaultCompanyName
	}
	return s.CompanyName
}

// CityLine joins city, state and postal code, skipping empty parts
func (s *Settings) CityLine() string {
	return JoinNonEmpty(", ", s.City, s.State, s.PostalCode)
}

// IsValidGSTIN reports whether v looks like a GSTIN
func IsValidGSTIN(v string) bool {
	return gstinPattern.MatchString(v)
}

// JoinNonEmpty joins the non-blank parts with sep
func JoinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// SettingsRepository persists company settings, one row per user
type SettingsRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}
