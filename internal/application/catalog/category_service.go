package catalog

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CategoryService handles product category use cases
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID returns a category
func (s *CategoryService) GetByID(ctx context.Context, userID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category; products keep their rows with the category cleared
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, userID, id)
}

// List returns categories ordered by name
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID, filter CategoryListFilter) (*query.Page[CategoryResponse], error) {
	domainFilter := filter.ToFilter("name")
	if filter.OrderDir == "" {
		domainFilter.OrderDir = "asc"
	}

	categories, err := s.categoryRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(categories, total, domainFilter, ToCategoryResponse), nil
}
