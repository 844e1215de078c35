package catalog

import (
	"context"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PriceBookService handles price book use cases
type PriceBookService struct {
	priceBookRepo catalog.PriceBookRepository
	productRepo   catalog.ProductRepository
}

// NewPriceBookService creates a new PriceBookService
func NewPriceBookService(priceBookRepo catalog.PriceBookRepository, productRepo catalog.ProductRepository) *PriceBookService {
	return &PriceBookService{
		priceBookRepo: priceBookRepo,
		productRepo:   productRepo,
	}
}

// Create creates a new price book
func (s *PriceBookService) Create(ctx context.Context, userID uuid.UUID, req PriceBookRequest) (*PriceBookResponse, error) {
	book, err := catalog.NewPriceBook(userID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		book.SetActive(*req.IsActive)
	}
	if err := s.priceBookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	resp := ToPriceBookResponse(book)
	return &resp, nil
}

// GetByID returns a price book with its items
func (s *PriceBookService) GetByID(ctx context.Context, userID, id uuid.UUID) (*PriceBookResponse, error) {
	book, err := s.priceBookRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPriceBookResponse(book)
	return &resp, nil
}

// Update changes name, description and the active flag
func (s *PriceBookService) Update(ctx context.Context, userID, id uuid.UUID, req PriceBookRequest) (*PriceBookResponse, error) {
	book, err := s.priceBookRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := book.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		book.SetActive(*req.IsActive)
	}
	if err := s.priceBookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	resp := ToPriceBookResponse(book)
	return &resp, nil
}

// Delete removes a price book and its items
func (s *PriceBookService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.priceBookRepo.Delete(ctx, userID, id)
}

// List returns a page of price books
func (s *PriceBookService) List(ctx context.Context, userID uuid.UUID, filter PriceBookListFilter) (*query.Page[PriceBookResponse], error) {
	domainFilter := filter.ToFilter("created_at")
	if filter.IsActive != nil {
		domainFilter.Filters[catalog.FilterActive] = *filter.IsActive
	}

	books, err := s.priceBookRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.priceBookRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(books, total, domainFilter, ToPriceBookResponse), nil
}

// ListActive returns every active price book
func (s *PriceBookService) ListActive(ctx context.Context, userID uuid.UUID) ([]PriceBookResponse, error) {
	books, err := s.priceBookRepo.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]PriceBookResponse, 0, len(books))
	for i := range books {
		out = append(out, ToPriceBookResponse(&books[i]))
	}
	return out, nil
}

// AddProduct lists a product in the book, or updates its list price
func (s *PriceBookService) AddProduct(ctx context.Context, userID, bookID uuid.UUID, req PriceBookItemRequest) (*PriceBookResponse, error) {
	book, err := s.priceBookRepo.FindByID(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, userID, req.ProductID); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.InvalidInput("Invalid product")
		}
		return nil, err
	}
	if _, err := book.AddProduct(req.ProductID, req.ListPrice); err != nil {
		return nil, err
	}
	if err := s.priceBookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	resp := ToPriceBookResponse(book)
	return &resp, nil
}

// RemoveProduct drops a product from the book
func (s *PriceBookService) RemoveProduct(ctx context.Context, userID, bookID, productID uuid.UUID) (*PriceBookResponse, error) {
	book, err := s.priceBookRepo.FindByID(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.RemoveProduct(productID); err != nil {
		return nil, err
	}
	if err := s.priceBookRepo.Save(ctx, book); err != nil {
		return nil, err
	}
	resp := ToPriceBookResponse(book)
	return &resp, nil
}
