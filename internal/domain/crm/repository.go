package crm

import (
	"github.com/crmdesk/backend/internal/domain/shared"
)

// Filter keys understood by the crm repositories
const (
	FilterSource        = "source"
	FilterStatus        = "status"
	FilterInterestLevel = "interest_level"
	FilterStage         = "stage"
	FilterCustomerID    = "customer_id"
)

// LeadRepository persists leads.
// FindAll honours Search (name, email, company), the source, status and
// interest_level filters and the DateFrom/DateTo range on created_at.
type LeadRepository interface {
	shared.OwnedRepository[Lead]
}

// CustomerRepository persists customers.
// Search matches name, email, phone and company.
type CustomerRepository interface {
	shared.OwnedRepository[Customer]
}

// DealRepository persists deals
type DealRepository interface {
	shared.OwnedRepository[Deal]
}

// CallRepository persists calls and meetings
type CallRepository interface {
	shared.OwnedRepository[Call]
}
