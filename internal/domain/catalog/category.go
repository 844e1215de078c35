package catalog

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups products
type Category struct {
	shared.OwnedEntity
	Name        string
	Description string
}

// NewCategory creates a category
func NewCategory(userID uuid.UUID, name, description string) (*Category, error) {
	c := &Category{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := c.Update(name, description); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}
