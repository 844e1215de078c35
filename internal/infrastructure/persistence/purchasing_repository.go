package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements purchasing.VendorRepository using GORM
type GormVendorRepository struct {
	store ownedStore[purchasing.Vendor, models.VendorModel]
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{store: ownedStore[purchasing.Vendor, models.VendorModel]{
		db:            db,
		resource:      "Vendor",
		toDomain:      (*models.VendorModel).ToDomain,
		fromDomain:    models.VendorModelFromDomain,
		sortFields:    VendorSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"name", "email", "phone", "company"},
	}}
}

func (r *GormVendorRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*purchasing.Vendor, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormVendorRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]purchasing.Vendor, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormVendorRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormVendorRepository) Save(ctx context.Context, vendor *purchasing.Vendor) error {
	return r.store.save(ctx, vendor)
}

func (r *GormVendorRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormPurchaseOrderRepository implements purchasing.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	store ownedStore[purchasing.PurchaseOrder, models.PurchaseOrderModel]
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{store: ownedStore[purchasing.PurchaseOrder, models.PurchaseOrderModel]{
		db:            db,
		resource:      "Purchase order",
		toDomain:      (*models.PurchaseOrderModel).ToDomain,
		fromDomain:    models.PurchaseOrderModelFromDomain,
		sortFields:    PurchaseOrderSortFields,
		defaultSort:   "created_at",
		dateColumn:    "order_date",
		searchColumns: []string{"po_number", "notes"},
		filters: equalityFilters(
			filterColumn{purchasing.FilterStatus, "status"},
			filterColumn{purchasing.FilterVendorID, "vendor_id"},
		),
		preload:      "Items",
		preloadOrder: itemOrder,
		saveChildren: func(tx *gorm.DB, m *models.PurchaseOrderModel) error {
			return replaceChildren(tx, "purchase_order_id", m.ID, m.Items)
		},
		deleteChildren: childDeleter[models.PurchaseOrderItemModel]("purchase_order_id"),
	}}
}

func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormPurchaseOrderRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// ExistsByNumber checks whether number is already used by another purchase order of userID
func (r *GormPurchaseOrderRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	return r.store.exists(ctx, userID, excludeID, "po_number = ?", number)
}

// CountByProduct counts purchase orders with an item for productID
func (r *GormPurchaseOrderRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	return countByProduct(ctx, r.store.db, "purchase_orders", "purchase_order_items", "purchase_order_id", userID, productID)
}

// Save writes the order header and replaces its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *purchasing.PurchaseOrder) error {
	return r.store.save(ctx, po)
}

func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

var (
	_ purchasing.VendorRepository        = (*GormVendorRepository)(nil)
	_ purchasing.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
)
