package crm

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadSource records where a lead came from
type LeadSource string

const (
	LeadSourceWebsite     LeadSource = "website"
	LeadSourceReferral    LeadSource = "referral"
	LeadSourceSocialMedia LeadSource = "social_media"
	LeadSourceEmail       LeadSource = "email"
	LeadSourceColdCall    LeadSource = "cold_call"
	LeadSourceEvent       LeadSource = "event"
	LeadSourceOther       LeadSource = "other"
)

// IsValid reports whether s is a known source
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceReferral, LeadSourceSocialMedia, LeadSourceEmail,
		LeadSourceColdCall, LeadSourceEvent, LeadSourceOther:
		return true
	}
	return false
}

// LeadStatus is the position of a lead in the sales funnel
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusConverted LeadStatus = "converted"
)

// IsValid reports whether s is a known status
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost, LeadStatusConverted:
		return true
	}
	return false
}

// Interest level bounds
const (
	MinInterestLevel     = 1
	MaxInterestLevel     = 5
	DefaultInterestLevel = 3
)

// Lead is a prospective customer
type Lead struct {
	shared.OwnedEntity
	Name          string
	Email         string
	Phone         string
	Company       string
	Source        LeadSource
	Status        LeadStatus
	InterestLevel int
	Notes         string
}

// NewLead creates a lead with default source, status and interest level
func NewLead(userID uuid.UUID, name string) (*Lead, error) {
	l := &Lead{
		OwnedEntity:   shared.NewOwnedEntity(userID),
		Source:        LeadSourceOther,
		Status:        LeadStatusNew,
		InterestLevel: DefaultInterestLevel,
	}
	if err := l.Rename(name); err != nil {
		return nil, err
	}
	return l, nil
}

// Rename sets the lead name
func (l *Lead) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Lead name cannot exceed 200 characters")
	}
	l.Name = name
	l.Touch()
	return nil
}

// SetContact replaces the contact details
func (l *Lead) SetContact(email, phone, company string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	l.Email = email
	l.Phone = strings.TrimSpace(phone)
	l.Company = strings.TrimSpace(company)
	l.Touch()
	return nil
}

// SetSource sets the lead source; empty means other
func (l *Lead) SetSource(source LeadSource) error {
	if source == "" {
		source = LeadSourceOther
	}
	if !source.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Unknown lead source: "+string(source))
	}
	l.Source = source
	l.Touch()
	return nil
}

// SetStatus sets the funnel status
func (l *Lead) SetStatus(status LeadStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown lead status: "+string(status))
	}
	l.Status = status
	l.Touch()
	return nil
}

// SetInterestLevel sets the 1-5 interest rating
func (l *Lead) SetInterestLevel(level int) error {
	if level < MinInterestLevel || level > MaxInterestLevel {
		return shared.NewDomainError("INVALID_INTEREST_LEVEL", "Interest level must be between 1 and 5")
	}
	l.InterestLevel = level
	l.Touch()
	return nil
}

// SetNotes replaces the notes
func (l *Lead) SetNotes(notes string) {
	l.Notes = notes
	l.Touch()
}

// ConvertToCustomer builds a customer from the lead's contact details and
// marks the lead qualified.
func (l *Lead) ConvertToCustomer() (*Customer, error) {
	c, err := NewCustomer(l.UserID, l.Name)
	if err != nil {
		return nil, err
	}
	c.Email = l.Email
	c.Phone = l.Phone
	c.Company = l.Company
	l.Status = LeadStatusQualified
	l.Touch()
	return c, nil
}
