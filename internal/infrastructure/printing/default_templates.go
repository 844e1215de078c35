package printing

import (
	"embed"

	"github.com/crmdesk/backend/internal/domain/company"
)

//go:embed templates/*.html
var templateFS embed.FS

// partialsFile holds the blocks shared by every layout
const partialsFile = "templates/partials.html"

// DefaultTemplate describes one built-in invoice layout
type DefaultTemplate struct {
	ID          company.InvoiceTemplate
	Description string
	FilePath    string // Path within embed.FS
}

// Name is the label shown in the template picker
func (t DefaultTemplate) Name() string { return t.ID.DisplayName() }

// GetDefaultTemplates returns the built-in layouts in display order
func GetDefaultTemplates() []DefaultTemplate {
	return []DefaultTemplate{
		{
			ID:          company.TemplateClassic,
			Description: "Bordered table with the company block on the left and the document title on the right",
			FilePath:    "templates/t1.html",
		},
		{
			ID:          company.TemplateMinimal,
			Description: "Plain layout without borders or colour",
			FilePath:    "templates/t2.html",
		},
		{
			ID:          company.TemplateModern,
			Description: "Full width brand colour banner with a card for the totals",
			FilePath:    "templates/t3.html",
		},
		{
			ID:          company.TemplateCompact,
			Description: "Small type and tight spacing for long item lists",
			FilePath:    "templates/t4.html",
		},
		{
			ID:          company.TemplateElegant,
			Description: "Serif type, centred header and a thin accent rule",
			FilePath:    "templates/t5.html",
		},
	}
}
