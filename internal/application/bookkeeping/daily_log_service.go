// Package bookkeeping contains the daily business log use cases.
package bookkeeping

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/application/query"
	"github.com/crmdesk/backend/internal/domain/bookkeeping"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrDuplicateLogDate is returned when a log already exists for the day
var ErrDuplicateLogDate = shared.NewDomainError("ALREADY_EXISTS", "A daily log already exists for this date")

// DailyLogService handles daily log use cases
type DailyLogService struct {
	logRepo bookkeeping.DailyLogRepository
}

// NewDailyLogService creates a new DailyLogService
func NewDailyLogService(logRepo bookkeeping.DailyLogRepository) *DailyLogService {
	return &DailyLogService{logRepo: logRepo}
}

// Create records the log of one day
func (s *DailyLogService) Create(ctx context.Context, userID uuid.UUID, req DailyLogRequest) (*DailyLogResponse, error) {
	log, err := bookkeeping.NewDailyLog(userID, req.LogDate)
	if err != nil {
		return nil, err
	}
	if err := s.checkDate(ctx, userID, log.LogDate, nil); err != nil {
		return nil, err
	}
	if err := applyLogRequest(log, req); err != nil {
		return nil, err
	}
	if err := s.logRepo.Save(ctx, log); err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

// GetByID returns a log
func (s *DailyLogService) GetByID(ctx context.Context, userID, id uuid.UUID) (*DailyLogResponse, error) {
	log, err := s.logRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

// Update replaces a log's figures and expenses
func (s *DailyLogService) Update(ctx context.Context, userID, id uuid.UUID, req DailyLogRequest) (*DailyLogResponse, error) {
	log, err := s.logRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := log.SetLogDate(req.LogDate); err != nil {
		return nil, err
	}
	if err := s.checkDate(ctx, userID, log.LogDate, &id); err != nil {
		return nil, err
	}
	if err := applyLogRequest(log, req); err != nil {
		return nil, err
	}
	if err := s.logRepo.Save(ctx, log); err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

func applyLogRequest(log *bookkeeping.DailyLog, req DailyLogRequest) error {
	if err := log.SetCounts(req.NumberOfSales, req.NumberOfPurchases); err != nil {
		return err
	}
	items := make([]bookkeeping.ExpenseItem, 0, len(req.ExpenseItems))
	for _, it := range req.ExpenseItems {
		items = append(items, bookkeeping.ExpenseItem{Description: it.Description, Amount: it.Amount})
	}
	if err := log.SetNotesAndExpenses(req.Notes, items); err != nil {
		return err
	}
	log.OpeningStock = req.OpeningStock
	log.ClosingStock = req.ClosingStock
	log.SalesAmount = req.SalesAmount
	log.IncomeAmount = req.IncomeAmount
	log.CashInHand = req.CashInHand
	log.BankBalance = req.BankBalance
	return nil
}

func (s *DailyLogService) checkDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeID *uuid.UUID) error {
	exists, err := s.logRepo.ExistsByDate(ctx, userID, date, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateLogDate
	}
	return nil
}

// PreviousDay returns the log of the day before date
func (s *DailyLogService) PreviousDay(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyLogResponse, error) {
	log, err := s.logRepo.FindByDate(ctx, userID, shared.StartOfDay(date).AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	resp := ToDailyLogResponse(log)
	return &resp, nil
}

// Delete removes a log
func (s *DailyLogService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.logRepo.Delete(ctx, userID, id)
}

// List returns a page of logs, latest day first
func (s *DailyLogService) List(ctx context.Context, userID uuid.UUID, filter DailyLogListFilter) (*query.Page[DailyLogResponse], error) {
	domainFilter := filter.ToFilter("log_date")
	logs, err := s.logRepo.FindAll(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.logRepo.Count(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return query.MapPage(logs, total, domainFilter, ToDailyLogResponse), nil
}
