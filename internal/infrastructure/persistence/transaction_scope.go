package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/application/transaction"
	"gorm.io/gorm"
)

// GormTransactionScope implements transaction.Scope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos transaction.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositorySet(tx))
	})
}

// NewRepositorySet builds the transactional repositories on db
func NewRepositorySet(db *gorm.DB) transaction.RepositorySet {
	return transaction.RepositorySet{
		LeadRepo:          NewGormLeadRepository(db),
		CustomerRepo:      NewGormCustomerRepository(db),
		ProductRepo:       NewGormProductRepository(db),
		QuotationRepo:     NewGormQuotationRepository(db),
		SalesOrderRepo:    NewGormSalesOrderRepository(db),
		StockApprovalRepo: NewGormStockApprovalRepository(db),
		PurchaseOrderRepo: NewGormPurchaseOrderRepository(db),
	}
}

var _ transaction.Scope = (*GormTransactionScope)(nil)
