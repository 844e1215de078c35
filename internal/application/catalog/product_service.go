// Package catalog contains the product, category and price book use cases.
package catalog

import (
	"context"
	"strings"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductUsageCounter counts documents that reference a product.
// Quotation, sales order and purchase order repositories implement it.
type ProductUsageCounter interface {
	CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

// ProductService handles product use cases
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	usage        []ProductUsageCounter
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	usage ...ProductUsageCounter,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		usage:        usage,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, userID uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	if err := s.checkName(ctx, userID, req.Name, nil); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.applyProductRequest(ctx, product, req); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a product
func (s *ProductService) GetByID(ctx context.Context, userID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces the product's fields
func (s *ProductService) Update(ctx context.Context, userID, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, userID, req.Name, &id); err != nil {
		return nil, err
	}
	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.applyProductRequest(ctx, product, req); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) checkName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) error {
	exists, err := s.productRepo.ExistsByName(ctx, userID, strings.TrimSpace(name), excludeID)
	if err != nil {
		return err
	}
	if exists {
		return catalog.ErrDuplicateProductName
	}
	return nil
}

func (s *ProductService) applyProductRequest(ctx context.Context, product *catalog.Product, req ProductRequest) error {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, product.UserID, *req.CategoryID); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return err
		}
	}
	product.CategoryID = req.CategoryID
	product.SKU = strings.TrimSpace(req.SKU)
	product.Catalogue = strings.TrimSpace(req.Catalogue)
	product.Description = req.Description

	if err := product.SetPrices(req.UnitPrice, req.CostPrice); err != nil {
		return err
	}
	if err := product.SetStock(req.QuantityInStock); err != nil {
		return err
	}
	return product.SetWeight(req.Weight, catalog.WeightUnit(req.WeightUnit))
}

// Delete removes a product that no quotation, sales order or purchase order references
func (s *ProductService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, userID, id); err != nil {
		return err
	}
	for _, counter := range s.usage {
		n, err := counter.CountByProduct(ctx, userID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalog.ErrProductInUse
		}
	}
	return s.productRepo.Delete(ctx, userID, id)
}

// List returns a page of products, newest first
func (s *ProductService) List(ctx context.Context, userID uuid.UUID, filter ProductListFilter) (*query.Page[ProductResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.CategoryID != nil {
		domainFilter.Filters[catalog.FilterCategoryID] = *filter.CategoryID
	}
	if filter.Catalogue != "" {
		domainFilter.Filters[catalog.FilterCatalogue] = filter.Catalogue
	}

	products, err := s.productRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(products, total, domainFilter, ToProductResponse), nil
}
