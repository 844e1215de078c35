package models

import (
	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanySettingsModel is the persistence model for company settings; one row per user.
type CompanySettingsModel struct {
	BaseModel
	UserID          uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName     string                  `gorm:"type:varchar(200);not null"`
	Email           string                  `gorm:"type:varchar(200)"`
	Phone           string                  `gorm:"type:varchar(50)"`
	Address         string                  `gorm:"type:text"`
	City            string                  `gorm:"type:varchar(100)"`
	State           string                  `gorm:"type:varchar(100)"`
	PostalCode      string                  `gorm:"type:varchar(20)"`
	LogoURL         string                  `gorm:"type:varchar(1000)"`
	TaxID           string                  `gorm:"type:varchar(50)"`
	GSTNumber       string                  `gorm:"type:varchar(20)"`
	CINNumber       string                  `gorm:"type:varchar(30)"`
	BrandColor      string                  `gorm:"type:varchar(20);not null"`
	ShowTaxID       bool                    `gorm:"not null;default:false"`
	ShowGSTNumber   bool                    `gorm:"not null;default:false"`
	ShowCINNumber   bool                    `gorm:"not null;default:false"`
	InvoiceTemplate company.InvoiceTemplate `gorm:"type:varchar(10);not null;default:'t1'"`
}

// TableName returns the table name for GORM
func (CompanySettingsModel) TableName() string {
	return "company_settings"
}

// ToDomain converts the persistence model to domain Settings.
func (m *CompanySettingsModel) ToDomain() *company.Settings {
	return &company.Settings{
		OwnedEntity:     shared.OwnedEntity{BaseEntity: m.BaseModel.ToDomain(), UserID: m.UserID},
		CompanyName:     m.CompanyName,
		Email:           m.Email,
		Phone:           m.Phone,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		PostalCode:      m.PostalCode,
		LogoURL:         m.LogoURL,
		TaxID:           m.TaxID,
		GSTNumber:       m.GSTNumber,
		CINNumber:       m.CINNumber,
		BrandColor:      m.BrandColor,
		ShowTaxID:       m.ShowTaxID,
		ShowGSTNumber:   m.ShowGSTNumber,
		ShowCINNumber:   m.ShowCINNumber,
		InvoiceTemplate: m.InvoiceTemplate,
	}
}

// FromDomain populates the persistence model from domain Settings.
func (m *CompanySettingsModel) FromDomain(s *company.Settings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.UserID = s.UserID
	m.CompanyName = s.CompanyName
	m.Email = s.Email
	m.Phone = s.Phone
	m.Address = s.Address
	m.City = s.City
	m.State = s.State
	m.PostalCode = s.PostalCode
	m.LogoURL = s.LogoURL
	m.TaxID = s.TaxID
	m.GSTNumber = s.GSTNumber
	m.CINNumber = s.CINNumber
	m.BrandColor = s.BrandColor
	m.ShowTaxID = s.ShowTaxID
	m.ShowGSTNumber = s.ShowGSTNumber
	m.ShowCINNumber = s.ShowCINNumber
	m.InvoiceTemplate = s.InvoiceTemplate
}

// CompanySettingsModelFromDomain creates a new persistence model from domain Settings.
func CompanySettingsModelFromDomain(s *company.Settings) *CompanySettingsModel {
	m := &CompanySettingsModel{}
	m.FromDomain(s)
	return m
}
