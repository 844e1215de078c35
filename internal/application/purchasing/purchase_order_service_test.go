package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/application/transaction"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPurchaseOrderService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("prices items at 18 percent", func(t *testing.T) {
		pos := new(mocks.PurchaseOrderRepository)
		vendors := new(mocks.VendorRepository)
		svc := NewPurchaseOrderService(pos, vendors, transaction.NewNoOpScope(transaction.RepositorySet{}), zap.NewNop())

		vendor, err := purchasing.NewVendor(userID, "Supplier")
		require.NoError(t, err)
		vendors.On("FindByID", ctx, userID, vendor.ID).Return(vendor, nil)
		pos.On("Save", ctx, mock.AnythingOfType("*purchasing.PurchaseOrder")).Return(nil)

		resp, err := svc.Create(ctx, userID, PurchaseOrderRequest{
			VendorID:       vendor.ID,
			DiscountAmount: decimal.NewFromInt(10),
			Items: []POItemRequest{
				{Description: "Boxes", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.True(t, decimal.NewFromInt(100).Equal(resp.Subtotal))
		assert.True(t, decimal.NewFromInt(18).Equal(resp.TaxAmount))
		assert.True(t, decimal.NewFromInt(108).Equal(resp.TotalAmount))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		pos := new(mocks.PurchaseOrderRepository)
		vendors := new(mocks.VendorRepository)
		svc := NewPurchaseOrderService(pos, vendors, transaction.NewNoOpScope(transaction.RepositorySet{}), zap.NewNop())
		missing := uuid.New()
		vendors.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Vendor"))

		_, err := svc.Create(ctx, userID, PurchaseOrderRequest{
			VendorID: missing,
			Items:    []POItemRequest{{Description: "X"}},
		})
		assert.ErrorIs(t, err, purchasing.ErrInvalidVendor)
		assert.Equal(t, "Invalid vendor", err.Error())
	})
}

func TestPurchaseOrderService_Receive(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	pos := new(mocks.PurchaseOrderRepository)
	products := new(mocks.ProductRepository)
	scope := transaction.NewNoOpScope(transaction.RepositorySet{PurchaseOrderRepo: pos, ProductRepo: products})
	svc := NewPurchaseOrderService(pos, new(mocks.VendorRepository), scope, zap.NewNop())

	product, err := catalog.NewProduct(userID, "Rice")
	require.NoError(t, err)
	require.NoError(t, product.SetStock(5))

	po, err := purchasing.NewPurchaseOrder(userID, uuid.New(), "PO-9", time.Now())
	require.NoError(t, err)
	require.NoError(t, po.ReplaceItems([]purchasing.POItemInput{
		{ProductID: &product.ID, Description: "Rice", Quantity: decimal.NewFromInt(7), UnitPrice: decimal.NewFromInt(40)},
		{Description: "Freight", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)},
	}, decimal.Zero))

	pos.On("FindByID", ctx, userID, po.ID).Return(po, nil)
	products.On("FindByID", ctx, userID, product.ID).Return(product, nil)
	products.On("Save", ctx, product).Return(nil)
	pos.On("Save", ctx, po).Return(nil)

	resp, err := svc.UpdateStatus(ctx, userID, po.ID, UpdatePOStatusRequest{Status: "received"})
	require.NoError(t, err)
	assert.Equal(t, "received", resp.Status)
	assert.Equal(t, 12, product.QuantityInStock)

	_, err = svc.Receive(ctx, userID, po.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	products.AssertNumberOfCalls(t, "Save", 1)
}

func TestVendorService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	vendors := new(mocks.VendorRepository)
	svc := NewVendorService(vendors)
	vendors.On("Save", ctx, mock.AnythingOfType("*purchasing.Vendor")).Return(nil)

	resp, err := svc.Create(ctx, userID, VendorRequest{Name: "Supplier", GSTNumber: "27aapfu0939f1zv"})
	require.NoError(t, err)
	assert.Equal(t, "27AAPFU0939F1ZV", resp.GSTNumber)
}
