package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	store ownedStore[catalog.Product, models.ProductModel]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{store: ownedStore[catalog.Product, models.ProductModel]{
		db:            db,
		resource:      "Product",
		toDomain:      (*models.ProductModel).ToDomain,
		fromDomain:    models.ProductModelFromDomain,
		sortFields:    ProductSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"name", "sku", "catalogue"},
		filters: equalityFilters(
			filterColumn{catalog.FilterCategoryID, "category_id"},
			filterColumn{catalog.FilterCatalogue, "catalogue"},
		),
	}}
}

func (r *GormProductRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*catalog.Product, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormProductRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormProductRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// ExistsByName checks for another product with the same name, ignoring case
func (r *GormProductRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	return r.store.exists(ctx, userID, excludeID, "LOWER(name) = LOWER(?)", name)
}

// FindByIDs loads the products among ids owned by userID. Unknown IDs are skipped.
func (r *GormProductRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return r.store.findWhere(ctx, userID, "name ASC", "id IN ?", ids)
}

func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.store.save(ctx, product)
}

func (r *GormProductRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	store ownedStore[catalog.Category, models.CategoryModel]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{store: ownedStore[catalog.Category, models.CategoryModel]{
		db:            db,
		resource:      "Category",
		toDomain:      (*models.CategoryModel).ToDomain,
		fromDomain:    models.CategoryModelFromDomain,
		sortFields:    CategorySortFields,
		defaultSort:   "name",
		searchColumns: []string{"name", "description"},
	}}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*catalog.Category, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormCategoryRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.Category, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormCategoryRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.store.save(ctx, category)
}

// Delete removes a category and detaches its products
func (r *GormCategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductModel{}).
			Scopes(OwnerScope(userID)).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return translateError(err, "Category")
		}
		scoped := r.store
		scoped.db = tx
		return scoped.delete(ctx, userID, id)
	})
}

// GormPriceBookRepository implements catalog.PriceBookRepository using GORM
type GormPriceBookRepository struct {
	store ownedStore[catalog.PriceBook, models.PriceBookModel]
}

// NewGormPriceBookRepository creates a new GormPriceBookRepository
func NewGormPriceBookRepository(db *gorm.DB) *GormPriceBookRepository {
	return &GormPriceBookRepository{store: ownedStore[catalog.PriceBook, models.PriceBookModel]{
		db:            db,
		resource:      "Price book",
		toDomain:      (*models.PriceBookModel).ToDomain,
		fromDomain:    models.PriceBookModelFromDomain,
		sortFields:    PriceBookSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"name", "description"},
		filters:       equalityFilters(filterColumn{catalog.FilterActive, "is_active"}),
		preload:       "Items",
		saveChildren: func(tx *gorm.DB, m *models.PriceBookModel) error {
			return replaceChildren(tx, "price_book_id", m.ID, m.Items)
		},
		deleteChildren: childDeleter[models.PriceBookItemModel]("price_book_id"),
	}}
}

func (r *GormPriceBookRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*catalog.PriceBook, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormPriceBookRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]catalog.PriceBook, error) {
	return r.store.findAll(ctx, userID, filter)
}

// FindActive returns every active price book, by name
func (r *GormPriceBookRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]catalog.PriceBook, error) {
	return r.store.findWhere(ctx, userID, "name ASC", "is_active = ?", true)
}

func (r *GormPriceBookRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormPriceBookRepository) Save(ctx context.Context, book *catalog.PriceBook) error {
	return r.store.save(ctx, book)
}

func (r *GormPriceBookRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

var (
	_ catalog.ProductRepository   = (*GormProductRepository)(nil)
	_ catalog.CategoryRepository  = (*GormCategoryRepository)(nil)
	_ catalog.PriceBookRepository = (*GormPriceBookRepository)(nil)
)
