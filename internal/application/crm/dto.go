package crm

import (
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

// LeadRequest carries the lead form for create and update
type LeadRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Email         string `json:"email" binding:"omitempty,email,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Company       string `json:"company" binding:"max=200"`
	Source        string `json:"source" binding:"omitempty,oneof=website referral social_media email cold_call event other"`
	Status        string `json:"status" binding:"omitempty,oneof=new contacted qualified lost converted"`
	InterestLevel int    `json:"interest_level" binding:"omitempty,min=1,max=5"`
	Notes         string `json:"notes" binding:"max=5000"`
}

// LeadResponse is a lead returned to clients
type LeadResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	Source        string    `json:"source"`
	Status        string    `json:"status"`
	InterestLevel int       `json:"interest_level"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LeadListFilter filters the lead list
type LeadListFilter struct {
	query.List
	Source        string `form:"source" binding:"omitempty,oneof=website referral social_media email cold_call event other"`
	Status        string `form:"status" binding:"omitempty,oneof=new contacted qualified lost converted"`
	InterestLevel int    `form:"interest_level" binding:"omitempty,min=1,max=5"`
}

// ConvertLeadResult is returned by lead conversion
type ConvertLeadResult struct {
	Lead     LeadResponse     `json:"lead"`
	Customer CustomerResponse `json:"customer"`
}

// ToLeadResponse converts a domain lead
func ToLeadResponse(l *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:            l.ID,
		Name:          l.Name,
		Email:         l.Email,
		Phone:         l.Phone,
		Company:       l.Company,
		Source:        string(l.Source),
		Status:        string(l.Status),
		InterestLevel: l.InterestLevel,
		Notes:         l.Notes,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Customers
// ---------------------------------------------------------------------------

// CustomerRequest carries the customer form for create and update
type CustomerRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	Company    string `json:"company" binding:"max=200"`
	Address    string `json:"address" binding:"max=500"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	GSTNumber  string `json:"gst_number" binding:"omitempty,gst"`
	Notes      string `json:"notes" binding:"max=5000"`
}

// CustomerResponse is a customer returned to clients
type CustomerResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Company    string    `json:"company"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	GSTNumber  string    `json:"gst_number"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustomerListFilter filters the customer list
type CustomerListFilter struct {
	query.List
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:         c.ID,
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
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Deals
// ---------------------------------------------------------------------------

// DealRequest carries the deal form for create and update
type DealRequest struct {
	Title             string          `json:"title" binding:"required,max=200"`
	CustomerID        *uuid.UUID      `json:"customer_id"`
	Value             decimal.Decimal `json:"value"`
	Stage             string          `json:"stage" binding:"omitempty,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date"`
	Notes             string          `json:"notes" binding:"max=5000"`
}

// DealResponse is a deal returned to clients
type DealResponse struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	CustomerID        *uuid.UUID      `json:"customer_id,omitempty"`
	Value             decimal.Decimal `json:"value"`
	Stage             string          `json:"stage"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date,omitempty"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DealListFilter filters the deal list
type DealListFilter struct {
	query.List
	Stage      string     `form:"stage" binding:"omitempty,oneof=prospecting qualification proposal negotiation closed_won closed_lost"`
	CustomerID *uuid.UUID `form:"customer_id"`
}

// ToDealResponse converts a domain deal
func ToDealResponse(d *crm.Deal) DealResponse {
	return DealResponse{
		ID:                d.ID,
		Title:             d.Title,
		CustomerID:        d.CustomerID,
		Value:             d.Value,
		Stage:             string(d.Stage),
		ExpectedCloseDate: d.ExpectedCloseDate,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Calls
// ---------------------------------------------------------------------------

// CallRequest carries the call form for create and update
type CallRequest struct {
	Subject         string     `json:"subject" binding:"required,max=200"`
	CustomerID      *uuid.UUID `json:"customer_id"`
	LeadID          *uuid.UUID `json:"lead_id"`
	CallType        string     `json:"call_type" binding:"omitempty,oneof=call meeting"`
	Status          string     `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes" binding:"min=0"`
	Notes           string     `json:"notes" binding:"max=5000"`
}

// CallResponse is a call returned to clients
type CallResponse struct {
	ID              uuid.UUID  `json:"id"`
	Subject         string     `json:"subject"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	LeadID          *uuid.UUID `json:"lead_id,omitempty"`
	CallType        string     `json:"call_type"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CallListFilter filters the call list
type CallListFilter struct {
	query.List
	Status     string     `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	CustomerID *uuid.UUID `form:"customer_id"`
}

// ToCallResponse converts a domain call
func ToCallResponse(c *crm.Call) CallResponse {
	return CallResponse{
		ID:              c.ID,
		Subject:         c.Subject,
		CustomerID:      c.CustomerID,
		LeadID:          c.LeadID,
		CallType:        string(c.CallType),
		Status:          string(c.Status),
		ScheduledAt:     c.ScheduledAt,
		DurationMinutes: c.DurationMinutes,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
