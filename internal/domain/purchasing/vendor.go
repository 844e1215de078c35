package purchasing

import (
	"net/mail"
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Vendor supplies goods on purchase orders
type Vendor struct {
	shared.OwnedEntity
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	GSTNumber string
}

// NewVendor creates a vendor
func NewVendor(userID uuid.UUID, name string) (*Vendor, error) {
	v := &Vendor{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := v.Rename(name); err != nil {
		return nil, err
	}
	return v, nil
}

// Rename sets the vendor name
func (v *Vendor) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	v.Name = name
	v.Touch()
	return nil
}

// SetContact replaces the contact details
func (v *Vendor) SetContact(email, phone, company, address, gstNumber string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email address: "+email)
		}
	}
	v.Email = email
	v.Phone = strings.TrimSpace(phone)
	v.Company = strings.TrimSpace(company)
	v.Address = strings.TrimSpace(address)
	v.GSTNumber = strings.ToUpper(strings.TrimSpace(gstNumber))
	v.Touch()
	return nil
}
