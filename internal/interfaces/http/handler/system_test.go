package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/application/bookkeeping"
	"github.com/crmdesk/backend/internal/application/report"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/scheduler"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/crmdesk/backend/internal/testutil"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFunc func() error

func (f pingFunc) Ping() error { return f() }

type mockJobRunner struct {
	mock.Mock
}

func (m *mockJobRunner) Runs() []scheduler.JobRun {
	return m.Called().Get(0).([]scheduler.JobRun)
}

func (m *mockJobRunner) RunNow(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func systemEngine(db Pinger, jobs JobRunner) *gin.Engine {
	h := NewSystemHandler(db, jobs, "1.2.3")
	e := newEngine(testutil.TestUserID())
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
	e.GET("/jobs", h.Jobs)
	e.POST("/jobs/:name/run", h.RunJob)
	return e
}

func TestSystemHandler_Probes(t *testing.T) {
	healthy := pingFunc(func() error { return nil })
	down := pingFunc(func() error { return errors.New("connection refused") })

	w := testutil.PerformRequest(t, systemEngine(down, nil), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.2.3", testutil.JSONBody(t, w)["version"])

	w = testutil.PerformRequest(t, systemEngine(healthy, nil), http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", testutil.JSONBody(t, w)["status"])

	w = testutil.PerformRequest(t, systemEngine(down, nil), http.MethodGet, "/ready", nil)
	testutil.AssertErrorResponse(t, w, http.StatusServiceUnavailable, dto.ErrCodeNotReady)
}

func TestSystemHandler_Jobs(t *testing.T) {
	db := pingFunc(func() error { return nil })

	t.Run("scheduler disabled", func(t *testing.T) {
		w := testutil.PerformRequest(t, systemEngine(db, nil), http.MethodGet, "/jobs", nil)
		resp := testutil.AssertSuccessResponse(t, w, http.StatusOK)
		assert.Empty(t, resp["data"])

		w = testutil.PerformRequest(t, systemEngine(db, nil), http.MethodPost, "/jobs/weekly-report/run", nil)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("lists runs", func(t *testing.T) {
		started := time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC)
		jobs := new(mockJobRunner)
		jobs.On("Runs").Return([]scheduler.JobRun{{Name: "weekly-report", Schedule: "0 20 * * 5", Status: scheduler.JobStatusSuccess, StartedAt: &started}})

		w := testutil.PerformRequest(t, systemEngine(db, jobs), http.MethodGet, "/jobs", nil)

		resp := testutil.AssertSuccessResponse(t, w, http.StatusOK)
		runs := resp["data"].([]any)
		require.Len(t, runs, 1)
		assert.Equal(t, "weekly-report", runs[0].(map[string]any)["name"])
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown job", fmt.Errorf("%w: nightly", scheduler.ErrJobNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"already running", scheduler.ErrJobAlreadyRunning, http.StatusConflict, dto.ErrCodeConflict},
		{"job failure", errors.New("webhook returned 500"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			jobs := new(mockJobRunner)
			jobs.On("RunNow", mock.Anything, "weekly-report").Return(tc.err)

			w := testutil.PerformRequest(t, systemEngine(db, jobs), http.MethodPost, "/jobs/weekly-report/run", nil)
			testutil.AssertErrorResponse(t, w, tc.status, tc.code)
		})
	}

	t.Run("runs now", func(t *testing.T) {
		jobs := new(mockJobRunner)
		jobs.On("RunNow", mock.Anything, "weekly-report").Return(nil)

		w := testutil.PerformRequest(t, systemEngine(db, jobs), http.MethodPost, "/jobs/weekly-report/run", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		jobs.AssertExpectations(t)
	})
}

func TestDailyLogHandler_Previous(t *testing.T) {
	userID := testutil.TestUserID()
	repo := new(mocks.DailyLogRepository)
	h := NewDailyLogHandler(bookkeeping.NewDailyLogService(repo))
	e := newEngine(userID)
	e.GET("/daily-logs/previous", h.Previous)

	w := testutil.PerformRequest(t, e, http.MethodGet, "/daily-logs/previous", nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = testutil.PerformRequest(t, e, http.MethodGet, "/daily-logs/previous?date=05-03-2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	repo.On("FindByDate", mock.Anything, userID, mock.MatchedBy(func(d time.Time) bool {
		return d.Year() == 2026 && d.Month() == time.March && d.Day() == 4
	})).Return(nil, shared.NotFound("Daily log")).Once()
	w = testutil.PerformRequest(t, e, http.MethodGet, "/daily-logs/previous?date=2026-03-05", nil)
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	repo.AssertExpectations(t)
}

func TestReportHandler_RejectsUnknownPeriod(t *testing.T) {
	h := NewReportHandler(report.NewReportService(new(mocks.CRMReportRepository), zap.NewNop()))
	e := newEngine(testutil.TestUserID())
	e.GET("/reports/crm", h.CRM)
	e.GET("/reports/crm/export", h.Export)

	for _, path := range []string{"/reports/crm?period=quarter", "/reports/crm/export?period=quarter"} {
		w := testutil.PerformRequest(t, e, http.MethodGet, path, nil)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	}

	anon := newEngine(uuid.Nil)
	anon.GET("/reports/crm", h.CRM)
	w := testutil.PerformRequest(t, anon, http.MethodGet, "/reports/crm", nil)
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
}
