// Package router assembles the gin engine: the middleware chain, the probes and
// the /api/v1 resource routes.
package router

import (
	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/crmdesk/backend/internal/infrastructure/logger"
	"github.com/crmdesk/backend/internal/interfaces/http/handler"
	"github.com/crmdesk/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// APIPrefix is the mount point of every versioned route
const APIPrefix = "/api/v1"

// Handlers holds one handler per resource
type Handlers struct {
	System         *handler.SystemHandler
	Auth           *handler.AuthHandler
	Settings       *handler.SettingsHandler
	Leads          *handler.LeadHandler
	Customers      *handler.CustomerHandler
	Deals          *handler.DealHandler
	Calls          *handler.CallHandler
	Products       *handler.ProductHandler
	Categories     *handler.CategoryHandler
	PriceBooks     *handler.PriceBookHandler
	Quotations     *handler.QuotationHandler
	SalesOrders    *handler.SalesOrderHandler
	Approvals      *handler.ApprovalHandler
	Invoices       *handler.InvoiceHandler
	Vendors        *handler.VendorHandler
	PurchaseOrders *handler.PurchaseOrderHandler
	Employees      *handler.EmployeeHandler
	Departments    *handler.DepartmentHandler
	Payroll        *handler.PayrollHandler
	DailyLogs      *handler.DailyLogHandler
	Reports        *handler.ReportHandler
}

// Config controls the middleware chain
type Config struct {
	Logger      *zap.Logger
	Production  bool
	ServiceName string
	HTTP        config.HTTPConfig

	Validator middleware.TokenValidator
	// Blacklist is optional
	Blacklist auth.TokenBlacklist
	// RateLimiter is nil when rate limiting is disabled
	RateLimiter *middleware.RateLimiter
	// Tracing adds otelgin server spans
	Tracing bool
	// Meter is nil when request metrics are not recorded
	Meter metric.Meter
}

// PublicPaths are served without a bearer token
var PublicPaths = []string{
	APIPrefix + "/auth/register",
	APIPrefix + "/auth/login",
	APIPrefix + "/auth/refresh",
}

// New builds the engine
func New(cfg Config, h Handlers) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		logger.GinMiddleware(cfg.Logger),
		middleware.SecurityHeaders(cfg.Production),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)),
	)
	maxBody := cfg.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodySize
	}
	engine.Use(middleware.BodyLimit(maxBody))
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.Tracing {
		engine.Use(middleware.Tracing(cfg.ServiceName), middleware.SpanAttributes())
	}
	if cfg.Meter != nil {
		metrics, err := middleware.Metrics(cfg.Meter)
		if err != nil {
			return nil, err
		}
		engine.Use(metrics)
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group(APIPrefix)
	api.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		Validator:      cfg.Validator,
		TokenBlacklist: cfg.Blacklist,
		SkipPaths:      PublicPaths,
		Logger:         cfg.Logger,
	}))
	for _, g := range groups(h) {
		g.RegisterRoutes(api)
	}
	return engine, nil
}

func groups(h Handlers) []*DomainGroup {
	return []*DomainGroup{
		NewDomainGroup("/auth").
			POST("/register", h.Auth.Register).
			POST("/login", h.Auth.Login).
			POST("/refresh", h.Auth.RefreshToken).
			POST("/logout", h.Auth.Logout).
			GET("/me", h.Auth.GetProfile).
			PUT("/me", h.Auth.UpdateProfile).
			PUT("/password", h.Auth.ChangePassword),

		NewDomainGroup("/settings").
			GET("", h.Settings.Get).
			PUT("", h.Settings.Upsert).
			POST("/logo", h.Settings.UploadLogo).
			GET("/templates", h.Settings.Templates),

		NewDomainGroup("/leads").
			GET("/export", h.Leads.Export).
			CRUD(h.Leads).
			POST("/:id/convert", h.Leads.Convert),
		NewDomainGroup("/customers").CRUD(h.Customers),
		NewDomainGroup("/deals").CRUD(h.Deals),
		NewDomainGroup("/calls").CRUD(h.Calls),

		NewDomainGroup("/products").CRUD(h.Products),
		NewDomainGroup("/categories").CRUD(h.Categories),
		NewDomainGroup("/price-books").
			GET("/active", h.PriceBooks.ListActive).
			CRUD(h.PriceBooks).
			POST("/:id/products", h.PriceBooks.AddProduct).
			DELETE("/:id/products/:productId", h.PriceBooks.RemoveProduct),

		NewDomainGroup("/quotations").
			CRUD(h.Quotations).
			PUT("/:id/items", h.Quotations.ReplaceItems).
			PATCH("/:id/status", h.Quotations.UpdateStatus).
			POST("/:id/convert", h.Quotations.Convert),
		NewDomainGroup("/sales-orders").
			CRUD(h.SalesOrders).
			PUT("/:id/items", h.SalesOrders.ReplaceItems).
			PATCH("/:id/status", h.SalesOrders.UpdateStatus).
			PATCH("/:id/payment-status", h.SalesOrders.UpdatePaymentStatus),
		NewDomainGroup("/approvals").
			GET("/pending", h.Approvals.ListPending).
			POST("/:id/approve", h.Approvals.Approve).
			POST("/:id/reject", h.Approvals.Reject),
		NewDomainGroup("/invoices").
			GET("/:id", h.Invoices.Render).
			GET("/:id/view", h.Invoices.View),

		NewDomainGroup("/vendors").CRUD(h.Vendors),
		NewDomainGroup("/purchase-orders").
			CRUD(h.PurchaseOrders).
			PATCH("/:id/status", h.PurchaseOrders.UpdateStatus).
			POST("/:id/receive", h.PurchaseOrders.Receive),

		NewDomainGroup("/employees").CRUD(h.Employees),
		NewDomainGroup("/departments").
			CRUD(h.Departments).
			POST("/:id/members", h.Departments.AddMember).
			DELETE("/:id/members/:employeeId", h.Departments.RemoveMember),
		NewDomainGroup("/payroll").
			GET("/analytics", h.Payroll.Analytics).
			CRUD(h.Payroll).
			PATCH("/:id/status", h.Payroll.UpdateStatus),

		NewDomainGroup("/daily-logs").
			GET("/previous", h.DailyLogs.Previous).
			CRUD(h.DailyLogs),

		NewDomainGroup("/reports").
			GET("/crm", h.Reports.CRM).
			GET("/crm/export", h.Reports.Export),

		NewDomainGroup("/jobs").
			GET("", h.System.Jobs).
			POST("/:name/run", h.System.RunJob),
	}
}
