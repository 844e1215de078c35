package persistence

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/domain/bookkeeping"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDailyLogRepository implements bookkeeping.DailyLogRepository using GORM
type GormDailyLogRepository struct {
	store ownedStore[bookkeeping.DailyLog, models.DailyLogModel]
}

// NewGormDailyLogRepository creates a new GormDailyLogRepository
func NewGormDailyLogRepository(db *gorm.DB) *GormDailyLogRepository {
	return &GormDailyLogRepository{store: ownedStore[bookkeeping.DailyLog, models.DailyLogModel]{
		db:            db,
		resource:      "Daily log",
		toDomain:      (*models.DailyLogModel).ToDomain,
		fromDomain:    models.DailyLogModelFromDomain,
		sortFields:    DailyLogSortFields,
		defaultSort:   "log_date",
		dateColumn:    "log_date",
		searchColumns: []string{"notes"},
	}}
}

// dayRange matches log_date within the calendar day of date
func dayRange(date time.Time) (string, time.Time, time.Time) {
	start := shared.StartOfDay(date)
	return "log_date >= ? AND log_date < ?", start, start.AddDate(0, 0, 1)
}

func (r *GormDailyLogRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*bookkeeping.DailyLog, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormDailyLogRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]bookkeeping.DailyLog, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormDailyLogRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// FindByDate returns the log of date's calendar day
func (r *GormDailyLogRepository) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*bookkeeping.DailyLog, error) {
	cond, from, to := dayRange(date)
	return r.store.first(r.store.query(ctx, userID).Where(cond, from, to))
}

// ExistsByDate checks for another log on date's calendar day
func (r *GormDailyLogRepository) ExistsByDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	cond, from, to := dayRange(date)
	return r.store.exists(ctx, userID, excludeID, cond, from, to)
}

func (r *GormDailyLogRepository) Save(ctx context.Context, log *bookkeeping.DailyLog) error {
	return r.store.save(ctx, log)
}

func (r *GormDailyLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

var _ bookkeeping.DailyLogRepository = (*GormDailyLogRepository)(nil)
