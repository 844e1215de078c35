package catalog

import (
	"context"
	"testing"

	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPriceBookService_AddProduct(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("lists product", func(t *testing.T) {
		books := new(mocks.PriceBookRepository)
		products := new(mocks.ProductRepository)
		svc := NewPriceBookService(books, products)

		book, err := catalog.NewPriceBook(userID, "Wholesale", "")
		require.NoError(t, err)
		product, err := catalog.NewProduct(userID, "Cement")
		require.NoError(t, err)

		books.On("FindByID", ctx, userID, book.ID).Return(book, nil)
		products.On("FindByID", ctx, userID, product.ID).Return(product, nil)
		books.On("Save", ctx, book).Return(nil)

		resp, err := svc.AddProduct(ctx, userID, book.ID, PriceBookItemRequest{
			ProductID: product.ID,
			ListPrice: decimal.NewFromInt(320),
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.ID, resp.Items[0].ProductID)
		assert.True(t, decimal.NewFromInt(320).Equal(resp.Items[0].ListPrice))
	})

	t.Run("unknown product", func(t *testing.T) {
		books := new(mocks.PriceBookRepository)
		products := new(mocks.ProductRepository)
		svc := NewPriceBookService(books, products)

		book, err := catalog.NewPriceBook(userID, "Retail", "")
		require.NoError(t, err)
		missing := uuid.New()
		books.On("FindByID", ctx, userID, book.ID).Return(book, nil)
		products.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Product"))

		_, err = svc.AddProduct(ctx, userID, book.ID, PriceBookItemRequest{ProductID: missing})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		books.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPriceBookService_ListActive(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	books := new(mocks.PriceBookRepository)
	svc := NewPriceBookService(books, new(mocks.ProductRepository))

	book, err := catalog.NewPriceBook(userID, "Retail", "Default prices")
	require.NoError(t, err)
	books.On("FindActive", ctx, userID).Return([]catalog.PriceBook{*book}, nil)

	got, err := svc.ListActive(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Retail", got[0].Name)
	assert.True(t, got[0].IsActive)
	assert.NotNil(t, got[0].Items)
}

func TestCategoryService_List_DefaultsToNameAscending(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categories := new(mocks.CategoryRepository)
	svc := NewCategoryService(categories)

	matches := mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "name" && f.OrderDir == "asc"
	})
	categories.On("FindAll", ctx, userID, matches).Return([]catalog.Category{}, nil)
	categories.On("Count", ctx, userID, matches).Return(int64(0), nil)

	page, err := svc.List(ctx, userID, CategoryListFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
