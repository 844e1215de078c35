package catalog

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the catalog repositories
const (
	FilterCategoryID = "category_id"
	FilterCatalogue  = "catalogue"
	FilterActive     = "is_active"
)

// ProductRepository persists products.
// Search matches name, sku and catalogue.
type ProductRepository interface {
	shared.OwnedRepository[Product]
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]Product, error)
}

// CategoryRepository persists product categories
type CategoryRepository interface {
	shared.OwnedRepository[Category]
}

// PriceBookRepository persists price books together with their items
type PriceBookRepository interface {
	shared.OwnedRepository[PriceBook]
	FindActive(ctx context.Context, userID uuid.UUID) ([]PriceBook, error)
}
