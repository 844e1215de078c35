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

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		products := new(mocks.ProductRepository)
		svc := NewProductService(products, new(mocks.CategoryRepository))

		products.On("ExistsByName", ctx, userID, "Steel Rod", (*uuid.UUID)(nil)).Return(false, nil)
		products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, userID, ProductRequest{
			Name:            "Steel Rod",
			UnitPrice:       decimal.NewFromInt(150),
			CostPrice:       decimal.NewFromInt(100),
			QuantityInStock: 40,
		})
		require.NoError(t, err)
		assert.Equal(t, "Steel Rod", resp.Name)
		assert.True(t, decimal.NewFromInt(50).Equal(resp.Profit))
		assert.Equal(t, "kg", resp.WeightUnit)
		assert.Equal(t, 40, resp.QuantityInStock)
		products.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		products := new(mocks.ProductRepository)
		svc := NewProductService(products, new(mocks.CategoryRepository))
		products.On("ExistsByName", ctx, userID, "Steel Rod", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, userID, ProductRequest{Name: " Steel Rod "})
		assert.ErrorIs(t, err, catalog.ErrDuplicateProductName)
		products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		products := new(mocks.ProductRepository)
		categories := new(mocks.CategoryRepository)
		svc := NewProductService(products, categories)

		missing := uuid.New()
		products.On("ExistsByName", ctx, userID, "Bolt", (*uuid.UUID)(nil)).Return(false, nil)
		categories.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Category"))

		_, err := svc.Create(ctx, userID, ProductRequest{Name: "Bolt", CategoryID: &missing})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	products := new(mocks.ProductRepository)
	svc := NewProductService(products, new(mocks.CategoryRepository))

	product, err := catalog.NewProduct(userID, "Old")
	require.NoError(t, err)
	products.On("FindByID", ctx, userID, product.ID).Return(product, nil)
	products.On("ExistsByName", ctx, userID, "New", &product.ID).Return(false, nil)
	products.On("Save", ctx, product).Return(nil)

	resp, err := svc.Update(ctx, userID, product.ID, ProductRequest{
		Name:       "New",
		SKU:        " SKU-1 ",
		Weight:     decimal.NewFromInt(2),
		WeightUnit: "g",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
	assert.Equal(t, "SKU-1", resp.SKU)
	assert.Equal(t, "g", resp.WeightUnit)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setup := func(t *testing.T, quoted, ordered, purchased int64) (*ProductService, *mocks.ProductRepository, uuid.UUID) {
		t.Helper()
		products := new(mocks.ProductRepository)
		quotations := new(mocks.QuotationRepository)
		orders := new(mocks.SalesOrderRepository)
		pos := new(mocks.PurchaseOrderRepository)

		product, err := catalog.NewProduct(userID, "Widget")
		require.NoError(t, err)
		products.On("FindByID", ctx, userID, product.ID).Return(product, nil)
		quotations.On("CountByProduct", ctx, userID, product.ID).Return(quoted, nil).Maybe()
		orders.On("CountByProduct", ctx, userID, product.ID).Return(ordered, nil).Maybe()
		pos.On("CountByProduct", ctx, userID, product.ID).Return(purchased, nil).Maybe()

		return NewProductService(products, new(mocks.CategoryRepository), quotations, orders, pos), products, product.ID
	}

	t.Run("unused product is removed", func(t *testing.T) {
		svc, products, id := setup(t, 0, 0, 0)
		products.On("Delete", ctx, userID, id).Return(nil)

		require.NoError(t, svc.Delete(ctx, userID, id))
		products.AssertCalled(t, "Delete", ctx, userID, id)
	})

	t.Run("referenced by a purchase order", func(t *testing.T) {
		svc, products, id := setup(t, 0, 0, 2)

		err := svc.Delete(ctx, userID, id)
		assert.ErrorIs(t, err, catalog.ErrProductInUse)
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("referenced by a quotation", func(t *testing.T) {
		svc, _, id := setup(t, 1, 0, 0)
		assert.ErrorIs(t, svc.Delete(ctx, userID, id), catalog.ErrProductInUse)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	categoryID := uuid.New()
	products := new(mocks.ProductRepository)
	svc := NewProductService(products, new(mocks.CategoryRepository))

	p, err := catalog.NewProduct(userID, "Cable")
	require.NoError(t, err)

	matches := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters[catalog.FilterCategoryID] == categoryID && f.Filters[catalog.FilterCatalogue] == "Electrical"
	})
	products.On("FindAll", ctx, userID, matches).Return([]catalog.Product{*p}, nil)
	products.On("Count", ctx, userID, matches).Return(int64(1), nil)

	filter := ProductListFilter{CategoryID: &categoryID, Catalogue: "Electrical"}
	page, err := svc.List(ctx, userID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cable", page.Items[0].Name)
}
