package report

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 13, 20, 0, 0, 0, time.UTC)

type memoryCache struct {
	mu   sync.Mutex
	data map[string]*report.CRMReport
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]*report.CRMReport)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*report.CRMReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, r *report.CRMReport, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = r
	c.sets++
	return nil
}

func stubRepo(userID uuid.UUID, since time.Time) *mocks.CRMReportRepository {
	repo := new(mocks.CRMReportRepository)
	expectReport(repo, userID, since)
	return repo
}

func expectReport(repo *mocks.CRMReportRepository, userID uuid.UUID, since time.Time) {
	filter := report.ReportFilter{UserID: userID, Since: since}
	repo.On("GetLeadStats", mock.Anything, filter).Return(&report.LeadStats{
		Total:     10,
		Converted: 3,
		BySource:  map[string]int64{"social_media": 6, "website": 4},
	}, nil)
	repo.On("CountCustomers", mock.Anything, filter).Return(int64(4), nil)
	repo.On("GetDealStats", mock.Anything, filter).Return(&report.DealStats{
		Total:   5,
		Won:     2,
		Lost:    1,
		Revenue: decimal.NewFromInt(150000),
		ByStage: map[string]int64{},
	}, nil)
	repo.On("GetOrderStats", mock.Anything, filter).Return(&report.OrderStats{Completed: 3, Pending: 1}, nil)
	repo.On("GetCallStats", mock.Anything, filter).Return(&report.CallStats{Total: 4, Completed: 3}, nil)
	repo.On("CountProducts", mock.Anything, filter).Return(int64(12), nil)
	repo.On("GetDailyLogTotals", mock.Anything, filter).Return(&report.DailyLogTotals{
		Sales:    decimal.NewFromInt(250000),
		Income:   decimal.NewFromInt(120000),
		Expenses: decimal.NewFromInt(20000),
	}, nil)
}

func newService(repo report.CRMReportRepository, opts ...Option) *ReportService {
	opts = append(opts, WithLocation(time.UTC))
	svc := NewReportService(repo, zap.NewNop(), opts...)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestReportService_GetCRMReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	since := fixedNow.AddDate(0, 0, -7)

	repo := stubRepo(userID, since)
	svc := newService(repo)

	r, err := svc.GetCRMReport(ctx, userID, "week")
	require.NoError(t, err)
	assert.Equal(t, report.PeriodWeek, r.Period)
	assert.Equal(t, since, r.Since)
	assert.Equal(t, int64(2), r.Summary.ActiveDeals)
	assert.Equal(t, 40.0, r.Summary.ConversionRate)
	assert.Equal(t, []report.NamedCount{{Name: "SOCIAL MEDIA", Value: 6}, {Name: "WEBSITE", Value: 4}}, r.LeadsBySource)
	assert.Empty(t, r.DealsByStage)
	repo.AssertExpectations(t)
}

func TestReportService_InvalidPeriod(t *testing.T) {
	svc := newService(new(mocks.CRMReportRepository))
	_, err := svc.GetCRMReport(context.Background(), uuid.New(), "quarter")
	require.Error(t, err)
}

func TestReportService_QueryFailure(t *testing.T) {
	userID := uuid.New()
	repo := new(mocks.CRMReportRepository)
	boom := errors.New("db down")
	repo.On("GetLeadStats", mock.Anything, mock.Anything).Return(nil, boom)
	repo.On("CountCustomers", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	repo.On("GetDealStats", mock.Anything, mock.Anything).Return(&report.DealStats{}, nil).Maybe()
	repo.On("GetOrderStats", mock.Anything, mock.Anything).Return(&report.OrderStats{}, nil).Maybe()
	repo.On("GetCallStats", mock.Anything, mock.Anything).Return(&report.CallStats{}, nil).Maybe()
	repo.On("CountProducts", mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	repo.On("GetDailyLogTotals", mock.Anything, mock.Anything).Return(&report.DailyLogTotals{}, nil).Maybe()

	_, err := newService(repo).GetCRMReport(context.Background(), userID, "day")
	assert.ErrorIs(t, err, boom)
}

func TestReportService_Cache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := stubRepo(userID, fixedNow.AddDate(0, -1, 0))
	cache := newMemoryCache()
	svc := newService(repo, WithCache(cache, time.Minute))

	first, err := svc.GetCRMReport(ctx, userID, "")
	require.NoError(t, err)
	second, err := svc.GetCRMReport(ctx, userID, "month")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)
	repo.AssertNumberOfCalls(t, "GetLeadStats", 1)
}

func TestReportService_ExportText(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc := newService(stubRepo(userID, fixedNow.AddDate(0, 0, -7)))

	export, err := svc.ExportText(ctx, userID, "week")
	require.NoError(t, err)
	assert.Equal(t, "crm-report-week-2025-06-13.txt", export.Filename)

	text := export.Content
	rule := strings.Repeat("=", 80)
	assert.True(t, strings.HasPrefix(text, "CRM ANALYTICS REPORT\nGenerated: 13-06-2025 20:00\nPeriod: WEEK\n"+rule+"\n"))
	assert.True(t, strings.HasSuffix(text, rule+"\nEnd of Report\n"+rule))
	for _, want := range []string{
		"Conversion Rate: 40.00%",
		"Active Deals: 2",
		"Total Revenue: ₹1,50,000",
		"Average Deal Value: ₹75,000",
		"Completion Rate: 75.00%",
		"Total Products: 12",
		"Total Sales: ₹2,50,000",
		"Net Profit: ₹1,00,000",
		"LEADS BY SOURCE\n" + rule + "\nSOCIAL MEDIA: 6\nWEBSITE: 4\n",
		"DEALS BY STAGE\n" + rule + "\nNo data available\n",
	} {
		assert.Contains(t, text, want)
	}
}

func TestReportService_ExportTextFromCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	generated := time.Date(2025, 6, 12, 23, 50, 0, 0, time.UTC)
	cache := newMemoryCache()
	svc := newService(stubRepo(userID, generated.AddDate(0, 0, -7)), WithCache(cache, time.Hour))
	svc.now = func() time.Time { return generated }

	_, err := svc.GetCRMReport(ctx, userID, "week")
	require.NoError(t, err)

	svc.now = func() time.Time { return generated.Add(20 * time.Minute) }
	export, err := svc.ExportText(ctx, userID, "week")
	require.NoError(t, err)
	assert.Equal(t, "crm-report-week-2025-06-12.txt", export.Filename)
	assert.Contains(t, export.Content, "Generated: 12-06-2025 23:50\n")
}

func TestRenderText_NoCalls(t *testing.T) {
	text := RenderText(&report.CRMReport{Period: report.PeriodDay, GeneratedAt: fixedNow}, time.UTC)
	assert.Contains(t, text, "Completion Rate: 0%\n")
	assert.Contains(t, text, "Average Deal Value: ₹0\n")
	assert.Equal(t, 2, strings.Count(text, "No data available"))
}
