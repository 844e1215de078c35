package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const itemOrder = "position ASC"

// GormQuotationRepository implements sales.QuotationRepository using GORM
type GormQuotationRepository struct {
	store ownedStore[sales.Quotation, models.QuotationModel]
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{store: ownedStore[sales.Quotation, models.QuotationModel]{
		db:            db,
		resource:      "Quotation",
		toDomain:      (*models.QuotationModel).ToDomain,
		fromDomain:    models.QuotationModelFromDomain,
		sortFields:    QuotationSortFields,
		defaultSort:   "created_at",
		dateColumn:    "quotation_date",
		searchColumns: []string{"quotation_number"},
		filters: equalityFilters(
			filterColumn{sales.FilterStatus, "status"},
			filterColumn{sales.FilterCustomerID, "customer_id"},
		),
		preload:      "Items",
		preloadOrder: itemOrder,
		saveChildren: func(tx *gorm.DB, m *models.QuotationModel) error {
			return replaceChildren(tx, "quotation_id", m.ID, m.Items)
		},
		deleteChildren: childDeleter[models.QuotationItemModel]("quotation_id"),
	}}
}

func (r *GormQuotationRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*sales.Quotation, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormQuotationRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]sales.Quotation, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormQuotationRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// ExistsByNumber checks whether number is already used by another quotation of userID
func (r *GormQuotationRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	return r.store.exists(ctx, userID, excludeID, "quotation_number = ?", number)
}

// CountByProduct counts quotations with an item for productID
func (r *GormQuotationRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	return countByProduct(ctx, r.store.db, "quotations", "quotation_items", "quotation_id", userID, productID)
}

// Save writes the quotation header and replaces its items
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *sales.Quotation) error {
	return r.store.save(ctx, quotation)
}

func (r *GormQuotationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormSalesOrderRepository implements sales.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	store ownedStore[sales.SalesOrder, models.SalesOrderModel]
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{store: ownedStore[sales.SalesOrder, models.SalesOrderModel]{
		db:            db,
		resource:      "Sales order",
		toDomain:      (*models.SalesOrderModel).ToDomain,
		fromDomain:    models.SalesOrderModelFromDomain,
		sortFields:    SalesOrderSortFields,
		defaultSort:   "created_at",
		dateColumn:    "order_date",
		searchColumns: []string{"order_number"},
		filters: equalityFilters(
			filterColumn{sales.FilterStatus, "status"},
			filterColumn{sales.FilterPaymentStatus, "payment_status"},
			filterColumn{sales.FilterCustomerID, "customer_id"},
		),
		preload:      "Items",
		preloadOrder: itemOrder,
		saveChildren: func(tx *gorm.DB, m *models.SalesOrderModel) error {
			return replaceChildren(tx, "sales_order_id", m.ID, m.Items)
		},
		deleteChildren: childDeleter[models.SalesOrderItemModel]("sales_order_id"),
	}}
}

func (r *GormSalesOrderRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*sales.SalesOrder, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormSalesOrderRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]sales.SalesOrder, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormSalesOrderRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// ExistsByNumber checks whether number is already used by another order of userID
func (r *GormSalesOrderRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	return r.store.exists(ctx, userID, excludeID, "order_number = ?", number)
}

// CountByProduct counts sales orders with an item for productID
func (r *GormSalesOrderRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	return countByProduct(ctx, r.store.db, "sales_orders", "sales_order_items", "sales_order_id", userID, productID)
}

// Save writes the order header and replaces its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	return r.store.save(ctx, order)
}

func (r *GormSalesOrderRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormStockApprovalRepository implements sales.StockApprovalRepository using GORM
type GormStockApprovalRepository struct {
	store ownedStore[sales.StockApproval, models.StockApprovalModel]
}

// NewGormStockApprovalRepository creates a new GormStockApprovalRepository
func NewGormStockApprovalRepository(db *gorm.DB) *GormStockApprovalRepository {
	return &GormStockApprovalRepository{store: ownedStore[sales.StockApproval, models.StockApprovalModel]{
		db:         db,
		resource:   "Stock approval",
		toDomain:   (*models.StockApprovalModel).ToDomain,
		fromDomain: models.StockApprovalModelFromDomain,
	}}
}

func (r *GormStockApprovalRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*sales.StockApproval, error) {
	return r.store.findByID(ctx, userID, id)
}

// FindPending returns pending approvals, oldest first
func (r *GormStockApprovalRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]sales.StockApproval, error) {
	return r.store.findWhere(ctx, userID, "created_at ASC", "status = ?", sales.ApprovalStatusPending)
}

// FindByOrder returns the most recent approval raised for orderID
func (r *GormStockApprovalRepository) FindByOrder(ctx context.Context, userID, orderID uuid.UUID) (*sales.StockApproval, error) {
	return r.store.first(r.store.query(ctx, userID).
		Where("sales_order_id = ?", orderID).
		Order("created_at DESC"))
}

func (r *GormStockApprovalRepository) Save(ctx context.Context, approval *sales.StockApproval) error {
	return r.store.save(ctx, approval)
}

var (
	_ sales.QuotationRepository     = (*GormQuotationRepository)(nil)
	_ sales.SalesOrderRepository    = (*GormSalesOrderRepository)(nil)
	_ sales.StockApprovalRepository = (*GormStockApprovalRepository)(nil)
)
