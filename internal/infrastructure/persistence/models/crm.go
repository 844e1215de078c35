package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadModel is the persistence model for the Lead domain entity.
type LeadModel struct {
	OwnedModel
	Name          string         `gorm:"type:varchar(200);not null"`
	Email         string         `gorm:"type:varchar(200)"`
	Phone         string         `gorm:"type:varchar(50)"`
	Company       string         `gorm:"type:varchar(200)"`
	Source        crm.LeadSource `gorm:"type:varchar(30);not null;index"`
	Status        crm.LeadStatus `gorm:"type:varchar(20);not null;index"`
	InterestLevel int            `gorm:"not null;default:3"`
	Notes         string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the persistence model to a domain Lead entity.
func (m *LeadModel) ToDomain() *crm.Lead {
	return &crm.Lead{
		OwnedEntity:   m.ToOwnedEntity(),
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Company:       m.Company,
		Source:        m.Source,
		Status:        m.Status,
		InterestLevel: m.InterestLevel,
		Notes:         m.Notes,
	}
}

// LeadModelFromDomain creates a new persistence model from a domain Lead entity.
func LeadModelFromDomain(l *crm.Lead) *LeadModel {
	m := &LeadModel{
		Name:          l.Name,
		Email:         l.Email,
		Phone:         l.Phone,
		Company:       l.Company,
		Source:        l.Source,
		Status:        l.Status,
		InterestLevel: l.InterestLevel,
		Notes:         l.Notes,
	}
	m.FromDomainOwnedEntity(l.OwnedEntity)
	return m
}

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	OwnedModel
	Name       string `gorm:"type:varchar(200);not null"`
	Email      string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
	Company    string `gorm:"type:varchar(200)"`
	Address    string `gorm:"type:text"`
	City       string `gorm:"type:varchar(100)"`
	State      string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
	GSTNumber  string `gorm:"type:varchar(20)"`
	Notes      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Company:     m.Company,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		PostalCode:  m.PostalCode,
		GSTNumber:   m.GSTNumber,
		Notes:       m.Notes,
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Company:    c.Company,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		GSTNumber:  c.GSTNumber,
		Notes:      c.Notes,
	}
	m.FromDomainOwnedEntity(c.OwnedEntity)
	return m
}

// DealModel is the persistence model for the Deal domain entity.
type DealModel struct {
	OwnedModel
	Title             string          `gorm:"type:varchar(200);not null"`
	CustomerID        *uuid.UUID      `gorm:"type:uuid;index"`
	Value             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stage             crm.DealStage   `gorm:"type:varchar(30);not null;index"`
	ExpectedCloseDate *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the persistence model to a domain Deal entity.
func (m *DealModel) ToDomain() *crm.Deal {
	return &crm.Deal{
		OwnedEntity:       m.ToOwnedEntity(),
		Title:             m.Title,
		CustomerID:        m.CustomerID,
		Value:             m.Value,
		Stage:             m.Stage,
		ExpectedCloseDate: m.ExpectedCloseDate,
		Notes:             m.Notes,
	}
}

// DealModelFromDomain creates a new persistence model from a domain Deal entity.
func DealModelFromDomain(d *crm.Deal) *DealModel {
	m := &DealModel{
		Title:             d.Title,
		CustomerID:        d.CustomerID,
		Value:             d.Value,
		Stage:             d.Stage,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Notes:             d.Notes,
	}
	m.FromDomainOwnedEntity(d.OwnedEntity)
	return m
}

// CallModel is the persistence model for the Call domain entity.
type CallModel struct {
	OwnedModel
	Subject         string         `gorm:"type:varchar(200);not null"`
	CustomerID      *uuid.UUID     `gorm:"type:uuid;index"`
	LeadID          *uuid.UUID     `gorm:"type:uuid;index"`
	CallType        crm.CallType   `gorm:"type:varchar(20);not null"`
	Status          crm.CallStatus `gorm:"type:varchar(20);not null;index"`
	ScheduledAt     *time.Time
	DurationMinutes int    `gorm:"not null;default:0"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CallModel) TableName() string {
	return "calls"
}

// ToDomain converts the persistence model to a domain Call entity.
func (m *CallModel) ToDomain() *crm.Call {
	return &crm.Call{
		OwnedEntity:     m.ToOwnedEntity(),
		Subject:         m.Subject,
		CustomerID:      m.CustomerID,
		LeadID:          m.LeadID,
		CallType:        m.CallType,
		Status:          m.Status,
		ScheduledAt:     m.ScheduledAt,
		DurationMinutes: m.DurationMinutes,
		Notes:           m.Notes,
	}
}

// CallModelFromDomain creates a new persistence model from a domain Call entity.
func CallModelFromDomain(c *crm.Call) *CallModel {
	m := &CallModel{
		Subject:         c.Subject,
		CustomerID:      c.CustomerID,
		LeadID:          c.LeadID,
		CallType:        c.CallType,
		Status:          c.Status,
		ScheduledAt:     c.ScheduledAt,
		DurationMinutes: c.DurationMinutes,
		Notes:           c.Notes,
	}
	m.FromDomainOwnedEntity(c.OwnedEntity)
	return m
}
