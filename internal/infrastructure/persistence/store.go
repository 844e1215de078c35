package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ownedStore implements the shared.OwnedRepository contract for one model type.
// T is the domain type and M its gorm model. Every query is scoped to the
// owning user.
type ownedStore[T any, M any] struct {
	db       *gorm.DB
	resource string

	toDomain   func(*M) *T
	fromDomain func(*T) *M

	sortFields  sortColumns
	defaultSort string
	// dateColumn is bounded by Filter.DateFrom and Filter.DateTo
	dateColumn    string
	searchColumns []string
	// filters applies the entity specific keys of Filter.Filters
	filters func(q *gorm.DB, f shared.Filter) *gorm.DB

	// preload names a has-many association loaded with every read,
	// ordered by preloadOrder when set.
	preload      string
	preloadOrder string
	// saveChildren rewrites the association rows after the parent is saved
	saveChildren func(tx *gorm.DB, m *M) error
	// deleteChildren removes the association rows before the parent is deleted
	deleteChildren func(tx *gorm.DB, parentID uuid.UUID) error
}

func (s *ownedStore[T, M]) query(ctx context.Context, userID uuid.UUID) *gorm.DB {
	q := s.db.WithContext(ctx).Model(new(M)).Scopes(OwnerScope(userID))
	if s.preload != "" {
		if s.preloadOrder != "" {
			order := s.preloadOrder
			q = q.Preload(s.preload, func(db *gorm.DB) *gorm.DB { return db.Order(order) })
		} else {
			q = q.Preload(s.preload)
		}
	}
	return q
}

func (s *ownedStore[T, M]) applyFilter(q *gorm.DB, f shared.Filter) *gorm.DB {
	q = q.Scopes(SearchScope(f.Search, s.searchColumns...))
	column := s.dateColumn
	if column == "" {
		column = "created_at"
	}
	if f.DateFrom != nil {
		q = q.Where(column+" >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where(column+" <= ?", *f.DateTo)
	}
	if s.filters != nil {
		q = s.filters(q, f)
	}
	return q
}

func (s *ownedStore[T, M]) findByID(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	var m M
	if err := s.query(ctx, userID).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err, s.resource)
	}
	return s.toDomain(&m), nil
}

func (s *ownedStore[T, M]) first(q *gorm.DB) (*T, error) {
	var m M
	if err := q.First(&m).Error; err != nil {
		return nil, translateError(err, s.resource)
	}
	return s.toDomain(&m), nil
}

func (s *ownedStore[T, M]) findAll(ctx context.Context, userID uuid.UUID, f shared.Filter) ([]T, error) {
	f = f.Normalize()
	var rows []M
	err := s.applyFilter(s.query(ctx, userID), f).
		Order(s.sortFields.orderClause(f.OrderBy, f.OrderDir, s.defaultSort)).
		Offset(f.Offset()).
		Limit(f.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, s.resource)
	}
	return s.mapRows(rows), nil
}

func (s *ownedStore[T, M]) findWhere(ctx context.Context, userID uuid.UUID, order string, query any, args ...any) ([]T, error) {
	var rows []M
	q := s.query(ctx, userID).Where(query, args...)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, translateError(err, s.resource)
	}
	return s.mapRows(rows), nil
}

func (s *ownedStore[T, M]) mapRows(rows []M) []T {
	out := make([]T, len(rows))
	for i := range rows {
		out[i] = *s.toDomain(&rows[i])
	}
	return out
}

func (s *ownedStore[T, M]) count(ctx context.Context, userID uuid.UUID, f shared.Filter) (int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(new(M)).Scopes(OwnerScope(userID))
	if err := s.applyFilter(q, f.Normalize()).Count(&total).Error; err != nil {
		return 0, translateError(err, s.resource)
	}
	return total, nil
}

func (s *ownedStore[T, M]) exists(ctx context.Context, userID uuid.UUID, excludeID *uuid.UUID, query any, args ...any) (bool, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(new(M)).Scopes(OwnerScope(userID)).Where(query, args...)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	if err := q.Count(&total).Error; err != nil {
		return false, translateError(err, s.resource)
	}
	return total > 0, nil
}

func (s *ownedStore[T, M]) save(ctx context.Context, entity *T) error {
	m := s.fromDomain(entity)
	if s.saveChildren == nil {
		return translateError(s.db.WithContext(ctx).Save(m).Error, s.resource)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return err
		}
		return s.saveChildren(tx, m)
	})
	return translateError(err, s.resource)
}

func (s *ownedStore[T, M]) delete(ctx context.Context, userID, id uuid.UUID) error {
	if s.deleteChildren == nil {
		return s.deleteRow(s.db.WithContext(ctx), userID, id)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deleteChildren(tx, id); err != nil {
			return translateError(err, s.resource)
		}
		return s.deleteRow(tx, userID, id)
	})
}

func (s *ownedStore[T, M]) deleteRow(db *gorm.DB, userID, id uuid.UUID) error {
	result := db.Scopes(OwnerScope(userID)).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return translateError(result.Error, s.resource)
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(s.resource)
	}
	return nil
}

// childDeleter removes the rows of C referencing a parent through fk
func childDeleter[C any](fk string) func(tx *gorm.DB, parentID uuid.UUID) error {
	return func(tx *gorm.DB, parentID uuid.UUID) error {
		return tx.Where(fk+" = ?", parentID).Delete(new(C)).Error
	}
}

// replaceChildren deletes the rows of C owned by parentID through fk and
// inserts rows in their place.
func replaceChildren[C any](tx *gorm.DB, fk string, parentID uuid.UUID, rows []C) error {
	if err := childDeleter[C](fk)(tx, parentID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// filterColumn binds a Filter.Filters key to the column it compares against
type filterColumn struct {
	key    string
	column string
}

// equalityFilters applies column = value for every present, non-empty key
func equalityFilters(columns ...filterColumn) func(q *gorm.DB, f shared.Filter) *gorm.DB {
	return func(q *gorm.DB, f shared.Filter) *gorm.DB {
		for _, c := range columns {
			v, ok := f.Filters[c.key]
			if !ok || v == nil || v == "" {
				continue
			}
			q = q.Where(c.column+" = ?", v)
		}
		return q
	}
}

// countByProduct counts the parent documents of userID with at least one
// item referencing productID.
func countByProduct(ctx context.Context, db *gorm.DB, parentTable, itemTable, fk string, userID, productID uuid.UUID) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Table(itemTable).
		Joins("JOIN "+parentTable+" ON "+parentTable+".id = "+itemTable+"."+fk).
		Where(parentTable+".user_id = ? AND "+itemTable+".product_id = ?", userID, productID).
		Distinct(parentTable + ".id").
		Count(&n).Error
	if err != nil {
		return 0, translateError(err, parentTable)
	}
	return n, nil
}
