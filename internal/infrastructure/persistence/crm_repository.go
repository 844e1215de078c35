package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	store ownedStore[crm.Lead, models.LeadModel]
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{store: ownedStore[crm.Lead, models.LeadModel]{
		db:            db,
		resource:      "Lead",
		toDomain:      (*models.LeadModel).ToDomain,
		fromDomain:    models.LeadModelFromDomain,
		sortFields:    LeadSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"name", "email", "company"},
		filters: equalityFilters(
			filterColumn{crm.FilterSource, "source"},
			filterColumn{crm.FilterStatus, "status"},
			filterColumn{crm.FilterInterestLevel, "interest_level"},
		),
	}}
}

func (r *GormLeadRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*crm.Lead, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormLeadRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Lead, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormLeadRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	return r.store.save(ctx, lead)
}

func (r *GormLeadRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormCustomerRepository implements crm.CustomerRepository using GORM
type GormCustomerRepository struct {
	store ownedStore[crm.Customer, models.CustomerModel]
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{store: ownedStore[crm.Customer, models.CustomerModel]{
		db:            db,
		resource:      "Customer",
		toDomain:      (*models.CustomerModel).ToDomain,
		fromDomain:    models.CustomerModelFromDomain,
		sortFields:    CustomerSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"name", "email", "phone", "company"},
	}}
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*crm.Customer, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormCustomerRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormCustomerRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	return r.store.save(ctx, customer)
}

// Delete removes a customer. Orders and quotations that still reference it
// make the delete fail with INVALID_INPUT.
func (r *GormCustomerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormDealRepository implements crm.DealRepository using GORM
type GormDealRepository struct {
	store ownedStore[crm.Deal, models.DealModel]
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{store: ownedStore[crm.Deal, models.DealModel]{
		db:            db,
		resource:      "Deal",
		toDomain:      (*models.DealModel).ToDomain,
		fromDomain:    models.DealModelFromDomain,
		sortFields:    DealSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"title"},
		filters: equalityFilters(
			filterColumn{crm.FilterStage, "stage"},
			filterColumn{crm.FilterCustomerID, "customer_id"},
		),
	}}
}

func (r *GormDealRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*crm.Deal, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormDealRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Deal, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormDealRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	return r.store.save(ctx, deal)
}

func (r *GormDealRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

// GormCallRepository implements crm.CallRepository using GORM
type GormCallRepository struct {
	store ownedStore[crm.Call, models.CallModel]
}

// NewGormCallRepository creates a new GormCallRepository
func NewGormCallRepository(db *gorm.DB) *GormCallRepository {
	return &GormCallRepository{store: ownedStore[crm.Call, models.CallModel]{
		db:            db,
		resource:      "Call",
		toDomain:      (*models.CallModel).ToDomain,
		fromDomain:    models.CallModelFromDomain,
		sortFields:    CallSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"subject", "notes"},
		filters: equalityFilters(
			filterColumn{crm.FilterStatus, "status"},
			filterColumn{crm.FilterCustomerID, "customer_id"},
		),
	}}
}

func (r *GormCallRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*crm.Call, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormCallRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Call, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormCallRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

func (r *GormCallRepository) Save(ctx context.Context, call *crm.Call) error {
	return r.store.save(ctx, call)
}

func (r *GormCallRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

var (
	_ crm.LeadRepository     = (*GormLeadRepository)(nil)
	_ crm.CustomerRepository = (*GormCustomerRepository)(nil)
	_ crm.DealRepository     = (*GormDealRepository)(nil)
	_ crm.CallRepository     = (*GormCallRepository)(nil)
)
