package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookkeepingapp "github.com/crmdesk/backend/internal/application/bookkeeping"
	catalogapp "github.com/crmdesk/backend/internal/application/catalog"
	companyapp "github.com/crmdesk/backend/internal/application/company"
	crmapp "github.com/crmdesk/backend/internal/application/crm"
	hrapp "github.com/crmdesk/backend/internal/application/hr"
	identityapp "github.com/crmdesk/backend/internal/application/identity"
	purchasingapp "github.com/crmdesk/backend/internal/application/purchasing"
	reportapp "github.com/crmdesk/backend/internal/application/report"
	salesapp "github.com/crmdesk/backend/internal/application/sales"
	"github.com/crmdesk/backend/internal/infrastructure/auth"
	"github.com/crmdesk/backend/internal/infrastructure/cache"
	"github.com/crmdesk/backend/internal/infrastructure/config"
	"github.com/crmdesk/backend/internal/infrastructure/logger"
	"github.com/crmdesk/backend/internal/infrastructure/notification"
	"github.com/crmdesk/backend/internal/infrastructure/persistence"
	"github.com/crmdesk/backend/internal/infrastructure/printing"
	"github.com/crmdesk/backend/internal/infrastructure/scheduler"
	"github.com/crmdesk/backend/internal/infrastructure/storage"
	"github.com/crmdesk/backend/internal/infrastructure/telemetry"
	"github.com/crmdesk/backend/internal/interfaces/http/handler"
	"github.com/crmdesk/backend/internal/interfaces/http/middleware"
	"github.com/crmdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	weeklyReportJob = "weekly-report"
	shutdownTimeout = 30 * time.Second
)

//	@title						CRM Desk API
//	@version					1.0
//	@description				CRM, sales, purchasing, HR and bookkeeping backend for small businesses
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(baseLog)
	}()

	if err := run(cfg, baseLog); err != nil {
		baseLog.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, baseLog *zap.Logger) error {
	ctx := context.Background()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, version, baseLog)
	if err != nil {
		return err
	}
	defer func() {
		_ = providers.Shutdown(context.Background())
	}()
	log := providers.BridgeLogger(baseLog, logger.ParseLevel(cfg.Log.Level))

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if err := middleware.SetupValidator(); err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, telemetry.DBOptions{
		Tracing: providers.DBTracingEnabled(),
		DBName:  cfg.Database.DBName,
		Meter:   providers.Meter("crmdesk/db"),
	}, log); err != nil {
		return err
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	stores, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).CreateStores()
	if err != nil {
		return err
	}
	defer func() {
		_ = stores.Close()
	}()

	loc := cfg.App.Location()

	// repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	dealRepo := persistence.NewGormDealRepository(db.DB)
	callRepo := persistence.NewGormCallRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	priceBookRepo := persistence.NewGormPriceBookRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	approvalRepo := persistence.NewGormStockApprovalRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	payrollRepo := persistence.NewGormPayrollRepository(db.DB)
	dailyLogRepo := persistence.NewGormDailyLogRepository(db.DB)
	reportRepo := persistence.NewGormCRMReportRepository(db.DB)
	metricsRepo := persistence.NewGormMetricsRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// optional adapters stay as nil interfaces when disabled
	var (
		logoStorage companyapp.LogoStorage
		archive     salesapp.DocumentArchive
		pdf         salesapp.PDFConverter
	)
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			return err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return err
		}
		logoStorage = s3
		if cfg.Printing.ArchivePDFs {
			archive = s3
		}
		log.Info("Object storage enabled", zap.String("bucket", s3.Bucket()))
	}
	if cfg.Printing.Enabled {
		converter := printing.NewChromedpConverter(printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteURL,
			NoSandbox:      cfg.Printing.NoSandbox,
			Logger:         log,
		})
		defer func() {
			_ = converter.Close()
		}()
		pdf = converter
	}
	templates, err := printing.NewTemplateEngine()
	if err != nil {
		return err
	}

	// services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, stores.TokenBlacklist, log)
	settingsService := companyapp.NewSettingsService(settingsRepo, logoStorage, cfg.Storage.MaxLogoSize, log)

	leadService := crmapp.NewLeadService(leadRepo, txScope, log)
	leadService.SetLocation(loc)
	customerService := crmapp.NewCustomerService(customerRepo)
	dealService := crmapp.NewDealService(dealRepo, customerRepo)
	callService := crmapp.NewCallService(callRepo, customerRepo, leadRepo)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, quotationRepo, salesOrderRepo, purchaseOrderRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	priceBookService := catalogapp.NewPriceBookService(priceBookRepo, productRepo)

	quotationService := salesapp.NewQuotationService(quotationRepo, customerRepo, txScope, log)
	salesOrderService := salesapp.NewSalesOrderService(salesOrderRepo, customerRepo, txScope, log)
	approvalService := salesapp.NewStockApprovalService(approvalRepo, salesOrderRepo, txScope, log)
	invoiceService := salesapp.NewInvoiceService(quotationRepo, salesOrderRepo, customerRepo, settingsRepo, templates, pdf, archive, log)

	vendorService := purchasingapp.NewVendorService(vendorRepo)
	purchaseOrderService := purchasingapp.NewPurchaseOrderService(purchaseOrderRepo, vendorRepo, txScope, log)

	employeeService := hrapp.NewEmployeeService(employeeRepo, departmentRepo)
	departmentService := hrapp.NewDepartmentService(departmentRepo, employeeRepo)
	payrollService := hrapp.NewPayrollService(payrollRepo, employeeRepo)
	payrollService.SetLocation(loc)

	dailyLogService := bookkeepingapp.NewDailyLogService(dailyLogRepo)
	reportService := reportapp.NewReportService(reportRepo, log,
		reportapp.WithCache(stores.ReportCache, cfg.Report.CacheTTL),
		reportapp.WithLocation(loc),
	)

	// background jobs
	crmMetrics, err := telemetry.NewCRMMetrics(providers.Meter("crmdesk/crm"), metricsRepo, log)
	if err != nil {
		return err
	}
	var jobs handler.JobRunner
	if cfg.Scheduler.Enabled {
		sched, err := newScheduler(cfg, loc, crmMetrics, reportService, userRepo, log)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		jobs = sched
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	dailyLogHandler := handler.NewDailyLogHandler(dailyLogService)
	dailyLogHandler.SetLocation(loc)

	engine, err := router.New(router.Config{
		Logger:      log,
		Production:  cfg.App.IsProduction(),
		ServiceName: cfg.Telemetry.ServiceName,
		HTTP:        cfg.HTTP,
		Validator:   jwtService,
		Blacklist:   stores.TokenBlacklist,
		RateLimiter: limiter,
		Tracing:     providers.TracingEnabled(),
		Meter:       providers.Meter("crmdesk/http"),
	}, router.Handlers{
		System:         handler.NewSystemHandler(db, jobs, version),
		Auth:           handler.NewAuthHandler(authService),
		Settings:       handler.NewSettingsHandler(settingsService),
		Leads:          handler.NewLeadHandler(leadService),
		Customers:      handler.NewCustomerHandler(customerService),
		Deals:          handler.NewDealHandler(dealService),
		Calls:          handler.NewCallHandler(callService),
		Products:       handler.NewProductHandler(productService),
		Categories:     handler.NewCategoryHandler(categoryService),
		PriceBooks:     handler.NewPriceBookHandler(priceBookService),
		Quotations:     handler.NewQuotationHandler(quotationService),
		SalesOrders:    handler.NewSalesOrderHandler(salesOrderService),
		Approvals:      handler.NewApprovalHandler(approvalService),
		Invoices:       handler.NewInvoiceHandler(invoiceService),
		Vendors:        handler.NewVendorHandler(vendorService),
		PurchaseOrders: handler.NewPurchaseOrderHandler(purchaseOrderService),
		Employees:      handler.NewEmployeeHandler(employeeService),
		Departments:    handler.NewDepartmentHandler(departmentService),
		Payroll:        handler.NewPayrollHandler(payrollService),
		DailyLogs:      dailyLogHandler,
		Reports:        handler.NewReportHandler(reportService),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	return serve(srv, log)
}

// newScheduler registers the weekly report job when a webhook is configured
func newScheduler(
	cfg *config.Config,
	loc *time.Location,
	observer scheduler.JobObserver,
	reports *reportapp.ReportService,
	users reportapp.UserLister,
	log *zap.Logger,
) (*scheduler.Scheduler, error) {
	sched := scheduler.New(scheduler.Config{
		JobTimeout: cfg.Scheduler.JobTimeout,
		Location:   loc,
		Observer:   observer,
	}, log)

	if cfg.Scheduler.WebhookURL == "" {
		log.Info("No report webhook configured, weekly report job disabled")
		return sched, nil
	}
	sender, err := notification.NewWebhookSender(cfg.Scheduler)
	if err != nil {
		return nil, err
	}
	digest := reportapp.NewWeeklyDigest(reports, users, sender, log)
	if err := sched.Register(weeklyReportJob, cfg.Scheduler.WeeklyReportCron, digest.Run); err != nil {
		return nil, err
	}
	log.Info("Weekly report job registered", zap.String("schedule", cfg.Scheduler.WeeklyReportCron))
	return sched, nil
}

// serve runs srv until SIGINT or SIGTERM, then drains in-flight requests
func serve(srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}
