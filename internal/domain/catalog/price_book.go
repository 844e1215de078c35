package catalog

import (
	"strings"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceBook is a named list of product prices
type PriceBook struct {
	shared.OwnedEntity
	Name        string
	Description string
	IsActive    bool
	Items       []PriceBookItem
}

// PriceBookItem is the list price of one product in a book
type PriceBookItem struct {
	ID          uuid.UUID
	PriceBookID uuid.UUID
	ProductID   uuid.UUID
	ListPrice   decimal.Decimal
}

// NewPriceBook creates an active price book
func NewPriceBook(userID uuid.UUID, name, description string) (*PriceBook, error) {
	pb := &PriceBook{
		OwnedEntity: shared.NewOwnedEntity(userID),
		IsActive:    true,
	}
	if err := pb.Update(name, description); err != nil {
		return nil, err
	}
	return pb, nil
}

// Update replaces name and description
func (pb *PriceBook) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Price book name cannot be empty")
	}
	pb.Name = name
	pb.Description = strings.TrimSpace(description)
	pb.Touch()
	return nil
}

// SetActive toggles the book
func (pb *PriceBook) SetActive(active bool) {
	pb.IsActive = active
	pb.Touch()
}

// AddProduct adds productID at listPrice, updating the price when already listed
func (pb *PriceBook) AddProduct(productID uuid.UUID, listPrice decimal.Decimal) (*PriceBookItem, error) {
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}
	for i := range pb.Items {
		if pb.Items[i].ProductID == productID {
			pb.Items[i].ListPrice = listPrice
			pb.Touch()
			return &pb.Items[i], nil
		}
	}
	pb.Items = append(pb.Items, PriceBookItem{
		ID:          uuid.New(),
		PriceBookID: pb.ID,
		ProductID:   productID,
		ListPrice:   listPrice,
	})
	pb.Touch()
	return &pb.Items[len(pb.Items)-1], nil
}

// RemoveProduct drops productID from the book
func (pb *PriceBook) RemoveProduct(productID uuid.UUID) error {
	for i := range pb.Items {
		if pb.Items[i].ProductID == productID {
			pb.Items = append(pb.Items[:i], pb.Items[i+1:]...)
			pb.Touch()
			return nil
		}
	}
	return shared.NotFound("Price book item")
}
