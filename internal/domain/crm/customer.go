package crm

import (
	"net/mail"
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer is a buying party referenced by quotations and sales orders
type Customer struct {
	shared.OwnedEntity
	Name       string
	Email      string
	Phone      string
	Company    string
	Address    string
	City       string
	State      string
	PostalCode string
	GSTNumber  string
	Notes      string
}

// NewCustomer creates a customer
func NewCustomer(userID uuid.UUID, name string) (*Customer, error) {
	c := &Customer{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename sets the customer name
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetContact replaces email, phone and company
func (c *Customer) SetContact(email, phone, company string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Company = strings.TrimSpace(company)
	c.Touch()
	return nil
}

// SetAddress replaces the postal address
func (c *Customer) SetAddress(address, city, state, postalCode string) {
	c.Address = strings.TrimSpace(address)
	c.City = strings.TrimSpace(city)
	c.State = strings.TrimSpace(state)
	c.PostalCode = strings.TrimSpace(postalCode)
	c.Touch()
}

// CityLine joins city, state and postal code, skipping blanks
func (c *Customer) CityLine() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.City, c.State, c.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func validateEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address: "+email)
	}
	return nil
}
