package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/application/bookkeeping"
	"github.com/crmdesk/backend/internal/application/company"
	"github.com/crmdesk/backend/internal/application/crm"
	"github.com/crmdesk/backend/internal/application/purchasing"
	domainbook "github.com/crmdesk/backend/internal/domain/bookkeeping"
	domaincrm "github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/crmdesk/backend/internal/interfaces/http/middleware"
	"github.com/crmdesk/backend/internal/testutil"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newEngine returns an engine that authenticates every request as userID,
// or leaves requests anonymous when userID is uuid.Nil.
func newEngine(userID uuid.UUID) *gin.Engine {
	e := gin.New()
	e.Use(middleware.RequestID())
	if userID != uuid.Nil {
		e.Use(testutil.AuthenticateAs(userID))
	}
	return e
}

func leadEngine(repo *mocks.LeadRepository, userID uuid.UUID) (*gin.Engine, *LeadHandler) {
	h := NewLeadHandler(crm.NewLeadService(repo, nil, zap.NewNop()))
	e := newEngine(userID)
	e.POST("/leads", h.Create)
	e.GET("/leads", h.List)
	e.GET("/leads/export", h.Export)
	e.GET("/leads/:id", h.Get)
	e.DELETE("/leads/:id", h.Delete)
	return e, h
}

func TestLeadHandler_Create(t *testing.T) {
	userID := testutil.TestUserID()
	repo := new(mocks.LeadRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(l *domaincrm.Lead) bool {
		return l.UserID == userID && l.Name == "Asha Rao"
	})).Return(nil)
	e, _ := leadEngine(repo, userID)

	w := testutil.PerformRequest(t, e, http.MethodPost, "/leads", map[string]any{
		"name":   "Asha Rao",
		"email":  "asha@example.com",
		"source": "referral",
	})

	resp := testutil.AssertSuccessResponse(t, w, http.StatusCreated)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "Asha Rao", data["name"])
	assert.Equal(t, "referral", data["source"])
	assert.Equal(t, "new", data["status"])
	repo.AssertExpectations(t)
}

func TestLeadHandler_CreateValidation(t *testing.T) {
	repo := new(mocks.LeadRepository)
	e, _ := leadEngine(repo, testutil.TestUserID())

	w := testutil.PerformRequest(t, e, http.MethodPost, "/leads", map[string]any{"email": "not-an-email"})

	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	body := testutil.JSONBodyAs[dto.Response](t, w)
	fields := make([]string, 0, len(body.Error.Details))
	for _, d := range body.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email"}, fields)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestLeadHandler_Get(t *testing.T) {
	userID := testutil.TestUserID()
	id := testutil.NewTestUUID("lead")

	t.Run("not found", func(t *testing.T) {
		repo := new(mocks.LeadRepository)
		repo.On("FindByID", mock.Anything, userID, id).Return(nil, shared.NotFound("Lead"))
		e, _ := leadEngine(repo, userID)

		w := testutil.PerformRequest(t, e, http.MethodGet, "/leads/"+id.String(), nil)
		testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		e, _ := leadEngine(new(mocks.LeadRepository), userID)

		w := testutil.PerformRequest(t, e, http.MethodGet, "/leads/42", nil)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("anonymous", func(t *testing.T) {
		e, _ := leadEngine(new(mocks.LeadRepository), uuid.Nil)

		w := testutil.PerformRequest(t, e, http.MethodGet, "/leads/"+id.String(), nil)
		testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	})
}

func TestLeadHandler_Delete(t *testing.T) {
	userID := testutil.TestUserID()
	id := testutil.NewTestUUID("lead")
	repo := new(mocks.LeadRepository)
	repo.On("Delete", mock.Anything, userID, id).Return(nil)
	e, _ := leadEngine(repo, userID)

	w := testutil.PerformRequest(t, e, http.MethodDelete, "/leads/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	repo.AssertExpectations(t)
}

func TestLeadHandler_List(t *testing.T) {
	userID := testutil.TestUserID()
	lead, err := domaincrm.NewLead(userID, "Ravi Kumar")
	require.NoError(t, err)
	lead.Email = "ravi@example.com"

	repo := new(mocks.LeadRepository)
	repo.On("FindAll", mock.Anything, userID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 20 && f.Filters[domaincrm.FilterStatus] == "new"
	})).Return([]domaincrm.Lead{*lead}, nil)
	repo.On("Count", mock.Anything, userID, mock.Anything).Return(int64(21), nil)
	e, _ := leadEngine(repo, userID)

	w := testutil.PerformRequest(t, e, http.MethodGet, "/leads?page=2&status=new", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.JSONBodyAs[struct {
		Data []crm.LeadResponse `json:"data"`
		Meta dto.Meta           `json:"meta"`
	}](t, w)
	want := []crm.LeadResponse{crm.ToLeadResponse(lead)}
	if diff := cmp.Diff(want, body.Data); diff != "" {
		t.Errorf("leads mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, dto.Meta{Total: 21, Page: 2, PageSize: 20, TotalPages: 2}, body.Meta)
}

func TestLeadHandler_ListRejectsBadFilter(t *testing.T) {
	e, _ := leadEngine(new(mocks.LeadRepository), testutil.TestUserID())

	w := testutil.PerformRequest(t, e, http.MethodGet, "/leads?status=archived", nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestLeadHandler_Export(t *testing.T) {
	userID := testutil.TestUserID()
	lead, err := domaincrm.NewLead(userID, "Meera")
	require.NoError(t, err)

	repo := new(mocks.LeadRepository)
	repo.On("FindAll", mock.Anything, userID, mock.Anything).Return([]domaincrm.Lead{*lead}, nil).Once()
	e, h := leadEngine(repo, userID)
	h.now = func() time.Time { return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC) }

	w := testutil.PerformRequest(t, e, http.MethodGet, "/leads/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="leads-2026-03-05.csv"`, w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(crm.LeadCSVHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Meera,"))
}

func TestVendorHandler_CreateRejectsBadGST(t *testing.T) {
	repo := new(mocks.VendorRepository)
	h := NewVendorHandler(purchasing.NewVendorService(repo))
	e := newEngine(testutil.TestUserID())
	e.POST("/vendors", h.Create)

	w := testutil.PerformRequest(t, e, http.MethodPost, "/vendors", map[string]any{
		"name":       "Shree Traders",
		"gst_number": "NOT-A-GSTIN",
	})

	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsHandler_UploadLogo(t *testing.T) {
	newSettingsEngine := func() *gin.Engine {
		h := NewSettingsHandler(company.NewSettingsService(new(mocks.SettingsRepository), nil, 1<<20, zap.NewNop()))
		e := newEngine(testutil.TestUserID())
		e.POST("/settings/logo", h.UploadLogo)
		return e
	}

	t.Run("missing file field", func(t *testing.T) {
		w := testutil.PerformRequest(t, newSettingsEngine(), http.MethodPost, "/settings/logo", nil)
		testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
	})

	t.Run("storage disabled", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile(logoFormField, "logo.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/settings/logo", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		newSettingsEngine().ServeHTTP(w, req)

		testutil.AssertErrorResponse(t, w, http.StatusServiceUnavailable, dto.ErrCodeStorageDisabled)
	})
}

func TestDailyLogHandler_Previous(t *testing.T) {
	userID := testutil.TestUserID()
	ist := time.FixedZone("IST", 5*3600+1800)

	newPreviousEngine := func(repo *mocks.DailyLogRepository) *gin.Engine {
		h := NewDailyLogHandler(bookkeeping.NewDailyLogService(repo))
		h.SetLocation(ist)
		e := newEngine(userID)
		e.GET("/daily-logs/previous", h.Previous)
		return e
	}

	t.Run("looks up the day before in the configured zone", func(t *testing.T) {
		repo := new(mocks.DailyLogRepository)
		yesterday := time.Date(2025, 6, 11, 0, 0, 0, 0, ist)
		log, err := domainbook.NewDailyLog(userID, yesterday)
		require.NoError(t, err)
		repo.On("FindByDate", mock.Anything, userID, mock.MatchedBy(func(d time.Time) bool {
			return d.Equal(yesterday)
		})).Return(log, nil)

		w := testutil.PerformRequest(t, newPreviousEngine(repo), http.MethodGet, "/daily-logs/previous?date=2025-06-12", nil)

		resp := testutil.AssertSuccessResponse(t, w, http.StatusOK)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "2025-06-11", data["log_date"])
		repo.AssertExpectations(t)
	})

	for _, tc := range []struct{ name, query string }{
		{"missing date", ""},
		{"malformed date", "?date=12-06-2025"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.DailyLogRepository)
			w := testutil.PerformRequest(t, newPreviousEngine(repo), http.MethodGet, "/daily-logs/previous"+tc.query, nil)
			testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)
			repo.AssertNotCalled(t, "FindByDate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
