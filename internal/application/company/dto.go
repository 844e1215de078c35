package company

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/google/uuid"
)

// UpsertSettingsRequest carries every editable company field
type UpsertSettingsRequest struct {
	CompanyName     string `json:"company_name" binding:"max=200"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone" binding:"max=50"`
	Address         string `json:"address" binding:"max=500"`
	City            string `json:"city" binding:"max=100"`
	State           string `json:"state" binding:"max=100"`
	PostalCode      string `json:"postal_code" binding:"max=20"`
	LogoURL         string `json:"logo_url" binding:"max=1000"`
	TaxID           string `json:"tax_id" binding:"max=50"`
	GSTNumber       string `json:"gst_number" binding:"omitempty,gst"`
	CINNumber       string `json:"cin_number" binding:"max=50"`
	BrandColor      string `json:"brand_color" binding:"omitempty,hexcolor"`
	ShowTaxID       bool   `json:"show_tax_id"`
	ShowGSTNumber   bool   `json:"show_gst_number"`
	ShowCINNumber   bool   `json:"show_cin_number"`
	InvoiceTemplate string `json:"invoice_template" binding:"omitempty,oneof=t1 t2 t3 t4 t5"`
}

// SettingsResponse is the company profile returned to clients
type SettingsResponse struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"company_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	PostalCode      string    `json:"postal_code"`
	LogoURL         string    `json:"logo_url"`
	TaxID           string    `json:"tax_id"`
	GSTNumber       string    `json:"gst_number"`
	CINNumber       string    `json:"cin_number"`
	BrandColor      string    `json:"brand_color"`
	ShowTaxID       bool      `json:"show_tax_id"`
	ShowGSTNumber   bool      `json:"show_gst_number"`
	ShowCINNumber   bool      `json:"show_cin_number"`
	InvoiceTemplate string    `json:"invoice_template"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToSettingsResponse converts domain settings
func ToSettingsResponse(s *company.Settings) SettingsResponse {
	return SettingsResponse{
		ID:              s.ID,
		CompanyName:     s.CompanyName,
		Email:           s.Email,
		Phone:           s.Phone,
		Address:         s.Address,
		City:            s.City,
		State:           s.State,
		PostalCode:      s.PostalCode,
		LogoURL:         s.LogoURL,
		TaxID:           s.TaxID,
		GSTNumber:       s.GSTNumber,
		CINNumber:       s.CINNumber,
		BrandColor:      s.BrandColor,
		ShowTaxID:       s.ShowTaxID,
		ShowGSTNumber:   s.ShowGSTNumber,
		ShowCINNumber:   s.ShowCINNumber,
		InvoiceTemplate: string(s.InvoiceTemplate),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// TemplateInfo describes a selectable invoice template
type TemplateInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadLogoInput is an uploaded logo image
type UploadLogoInput struct {
	Filename    string
	ContentType string
	Data        []byte
}
