// Package report assembles the CRM analytics report and its text export.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Cache stores assembled reports for a short time
type Cache interface {
	// Get returns nil without error on a miss
	Get(ctx context.Context, key string) (*report.CRMReport, error)
	Set(ctx context.Context, key string, r *report.CRMReport, ttl time.Duration) error
}

// ReportService builds CRM analytics reports
type ReportService struct {
	repo   report.CRMReportRepository
	cache  Cache
	ttl    time.Duration
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a ReportService
type Option func(*ReportService)

// WithCache caches reports for ttl; a zero ttl disables caching
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *ReportService) {
		s.cache = cache
		s.ttl = ttl
	}
}

// WithLocation sets the zone used for printed timestamps and file names
func WithLocation(loc *time.Location) Option {
	return func(s *ReportService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewReportService creates a new ReportService
func NewReportService(repo report.CRMReportRepository, logger *zap.Logger, opts ...Option) *ReportService {
	s := &ReportService{
		repo:   repo,
		loc:    time.Local,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(userID uuid.UUID, period report.Period) string {
	return fmt.Sprintf("report:crm:%s:%s", userID, period)
}

// GetCRMReport returns the analytics report for the period ending now
func (s *ReportService) GetCRMReport(ctx context.Context, userID uuid.UUID, period string) (*report.CRMReport, error) {
	p, err := report.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	key := cacheKey(userID, p)
	if s.cacheEnabled() {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	now := s.now()
	filter := report.ReportFilter{UserID: userID, Since: p.Start(now)}

	var (
		leads     *report.LeadStats
		customers int64
		deals     *report.DealStats
		orders    *report.OrderStats
		calls     *report.CallStats
		products  int64
		logs      *report.DailyLogTotals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leads, err = s.repo.GetLeadStats(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.repo.CountCustomers(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		deals, err = s.repo.GetDealStats(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.repo.GetOrderStats(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		calls, err = s.repo.GetCallStats(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.repo.CountProducts(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		logs, err = s.repo.GetDailyLogTotals(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &report.CRMReport{
		Period:        p,
		GeneratedAt:   now,
		Since:         filter.Since,
		Summary:       report.Assemble(*leads, customers, *deals, *orders, *calls, products, *logs),
		LeadsBySource: report.Breakdown(leads.BySource),
		DealsByStage:  report.Breakdown(deals.ByStage),
	}

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, key, r, s.ttl); err != nil {
			s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return r, nil
}

func (s *ReportService) cacheEnabled() bool {
	return s.cache != nil && s.ttl > 0
}

// TextExport is a downloadable plain-text report
type TextExport struct {
	Filename string
	Content  string
}

// ExportText renders the report for the period as plain text. The filename
// is dated like the report itself, which may come from the cache.
func (s *ReportService) ExportText(ctx context.Context, userID uuid.UUID, period string) (*TextExport, error) {
	r, err := s.GetCRMReport(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return &TextExport{
		Filename: fmt.Sprintf("crm-report-%s-%s.txt", r.Period, r.GeneratedAt.In(s.loc).Format("2006-01-02")),
		Content:  RenderText(r, s.loc),
	}, nil
}
