package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/crmdesk/backend/internal/interfaces/http/dto"
	"github.com/crmdesk/backend/internal/interfaces/http/handler"
	"github.com/crmdesk/backend/internal/interfaces/http/middleware"
	"github.com/crmdesk/backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

// stubHandlers wires handlers without services; tests only reach code paths
// that answer before a service is called.
func stubHandlers(db handler.Pinger) Handlers {
	return Handlers{
		System:         handler.NewSystemHandler(db, nil, "test"),
		Auth:           handler.NewAuthHandler(nil),
		Settings:       handler.NewSettingsHandler(nil),
		Leads:          handler.NewLeadHandler(nil),
		Customers:      handler.NewCustomerHandler(nil),
		Deals:          handler.NewDealHandler(nil),
		Calls:          handler.NewCallHandler(nil),
		Products:       handler.NewProductHandler(nil),
		Categories:     handler.NewCategoryHandler(nil),
		PriceBooks:     handler.NewPriceBookHandler(nil),
		Quotations:     handler.NewQuotationHandler(nil),
		SalesOrders:    handler.NewSalesOrderHandler(nil),
		Approvals:      handler.NewApprovalHandler(nil),
		Invoices:       handler.NewInvoiceHandler(nil),
		Vendors:        handler.NewVendorHandler(nil),
		PurchaseOrders: handler.NewPurchaseOrderHandler(nil),
		Employees:      handler.NewEmployeeHandler(nil),
		Departments:    handler.NewDepartmentHandler(nil),
		Payroll:        handler.NewPayrollHandler(nil),
		DailyLogs:      handler.NewDailyLogHandler(nil),
		Reports:        handler.NewReportHandler(nil),
	}
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-with-32-characters",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 2 * time.Hour,
		Issuer:                 "crmdesk-test",
		MaxRefreshCount:        3,
	})
}

func newTestEngine(t *testing.T, cfg Config, db handler.Pinger) *gin.Engine {
	t.Helper()
	if cfg.Validator == nil {
		cfg.Validator = newJWT()
	}
	engine, err := New(cfg, stubHandlers(db))
	require.NoError(t, err)
	return engine
}

func TestNew_RegistersRoutes(t *testing.T) {
	engine := newTestEngine(t, Config{}, pinger{})

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/login",
		"GET /api/v1/leads/export",
		"POST /api/v1/leads/:id/convert",
		"DELETE /api/v1/price-books/:id/products/:productId",
		"PATCH /api/v1/sales-orders/:id/payment-status",
		"POST /api/v1/approvals/:id/approve",
		"GET /api/v1/invoices/:id/view",
		"POST /api/v1/purchase-orders/:id/receive",
		"DELETE /api/v1/departments/:id/members/:employeeId",
		"GET /api/v1/payroll/analytics",
		"GET /api/v1/daily-logs/previous",
		"GET /api/v1/reports/crm/export",
		"POST /api/v1/jobs/:name/run",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestNew_Probes(t *testing.T) {
	engine := newTestEngine(t, Config{}, pinger{err: errors.New("down")})

	w := testutil.PerformRequest(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	w = testutil.PerformRequest(t, engine, http.MethodGet, "/ready", nil)
	testutil.AssertErrorResponse(t, w, http.StatusServiceUnavailable, dto.ErrCodeNotReady)
}

func TestNew_Authentication(t *testing.T) {
	jwtSvc := newJWT()
	engine := newTestEngine(t, Config{Validator: jwtSvc, Production: true}, pinger{})

	w := testutil.PerformRequest(t, engine, http.MethodGet, "/api/v1/jobs", nil)
	testutil.AssertErrorResponse(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))

	// public paths reach the handler, which rejects the empty body
	w = testutil.PerformRequest(t, engine, http.MethodPost, "/api/v1/auth/login", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pair, err := jwtSvc.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Email: "owner@example.com", Role: "owner"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	testutil.AssertSuccessResponse(t, rec, http.StatusOK)
}

func TestNew_RateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	engine := newTestEngine(t, Config{RateLimiter: rl}, pinger{})

	for i := 0; i < 2; i++ {
		w := testutil.PerformRequest(t, engine, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := testutil.PerformRequest(t, engine, http.MethodGet, "/health", nil)
	testutil.AssertErrorResponse(t, w, http.StatusTooManyRequests, dto.ErrCodeRateLimited)
}

func TestNew_BodyLimit(t *testing.T) {
	engine := newTestEngine(t, Config{HTTP: config.HTTPConfig{MaxBodySize: 16}}, pinger{})

	w := testutil.PerformRequest(t, engine, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "someone@example.com",
		"password": "long enough to exceed the limit",
	})
	testutil.AssertErrorResponse(t, w, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge)
}

func TestDomainGroup_CRUD(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method+" "+c.FullPath()) }
	NewDomainGroup("/things").
		GET("/special", ok).
		CRUD(crudStub{ok}).
		RegisterRoutes(engine.Group("/api"))

	cases := map[string]string{
		http.MethodGet + " /api/things":         "GET /api/things",
		http.MethodPost + " /api/things":        "POST /api/things",
		http.MethodGet + " /api/things/1":       "GET /api/things/:id",
		http.MethodPut + " /api/things/1":       "PUT /api/things/:id",
		http.MethodDelete + " /api/things/1":    "DELETE /api/things/:id",
		http.MethodGet + " /api/things/special": "GET /api/things/special",
	}
	for in, want := range cases {
		method, path, _ := strings.Cut(in, " ")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		assert.Equal(t, want, w.Body.String(), in)
	}
}

type crudStub struct{ h gin.HandlerFunc }

func (s crudStub) Create(c *gin.Context) { s.h(c) }
func (s crudStub) Get(c *gin.Context)    { s.h(c) }
func (s crudStub) Update(c *gin.Context) { s.h(c) }
func (s crudStub) Delete(c *gin.Context) { s.h(c) }
func (s crudStub) List(c *gin.Context)   { s.h(c) }
