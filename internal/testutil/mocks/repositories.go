package mocks

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/domain/bookkeeping"
	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/identity"
	"github.com/crmdesk/backend/internal/domain/purchasing"
	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository mocks identity.UserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// SettingsRepository mocks company.SettingsRepository
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*company.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Settings), args.Error(1)
}

func (m *SettingsRepository) Save(ctx context.Context, settings *company.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// LeadRepository mocks crm.LeadRepository
type LeadRepository struct{ OwnedRepo[crm.Lead] }

// CustomerRepository mocks crm.CustomerRepository
type CustomerRepository struct{ OwnedRepo[crm.Customer] }

// DealRepository mocks crm.DealRepository
type DealRepository struct{ OwnedRepo[crm.Deal] }

// CallRepository mocks crm.CallRepository
type CallRepository struct{ OwnedRepo[crm.Call] }

// CategoryRepository mocks catalog.CategoryRepository
type CategoryRepository struct{ OwnedRepo[catalog.Category] }

// ProductRepository mocks catalog.ProductRepository
type ProductRepository struct{ OwnedRepo[catalog.Product] }

func (m *ProductRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, userID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// PriceBookRepository mocks catalog.PriceBookRepository
type PriceBookRepository struct{ OwnedRepo[catalog.PriceBook] }

func (m *PriceBookRepository) FindActive(ctx context.Context, userID uuid.UUID) ([]catalog.PriceBook, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.PriceBook), args.Error(1)
}

// QuotationRepository mocks sales.QuotationRepository
type QuotationRepository struct{ OwnedRepo[sales.Quotation] }

func (m *QuotationRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *QuotationRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

// SalesOrderRepository mocks sales.SalesOrderRepository
type SalesOrderRepository struct{ OwnedRepo[sales.SalesOrder] }

func (m *SalesOrderRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *SalesOrderRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

// StockApprovalRepository mocks sales.StockApprovalRepository
type StockApprovalRepository struct {
	mock.Mock
}

func (m *StockApprovalRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*sales.StockApproval, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.StockApproval), args.Error(1)
}

func (m *StockApprovalRepository) FindPending(ctx context.Context, userID uuid.UUID) ([]sales.StockApproval, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.StockApproval), args.Error(1)
}

func (m *StockApprovalRepository) FindByOrder(ctx context.Context, userID, orderID uuid.UUID) (*sales.StockApproval, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.StockApproval), args.Error(1)
}

func (m *StockApprovalRepository) Save(ctx context.Context, approval *sales.StockApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

// VendorRepository mocks purchasing.VendorRepository
type VendorRepository struct{ OwnedRepo[purchasing.Vendor] }

// PurchaseOrderRepository mocks purchasing.PurchaseOrderRepository
type PurchaseOrderRepository struct {
	OwnedRepo[purchasing.PurchaseOrder]
}

func (m *PurchaseOrderRepository) ExistsByNumber(ctx context.Context, userID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *PurchaseOrderRepository) CountByProduct(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

// EmployeeRepository mocks hr.EmployeeRepository
type EmployeeRepository struct{ OwnedRepo[hr.Employee] }

func (m *EmployeeRepository) ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

// DepartmentRepository mocks hr.DepartmentRepository
type DepartmentRepository struct{ OwnedRepo[hr.Department] }

// PayrollRepository mocks hr.PayrollRepository
type PayrollRepository struct{ OwnedRepo[hr.PayrollRecord] }

func (m *PayrollRepository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]hr.PayrollRecord, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]hr.PayrollRecord), args.Error(1)
}

// DailyLogRepository mocks bookkeeping.DailyLogRepository
type DailyLogRepository struct {
	OwnedRepo[bookkeeping.DailyLog]
}

func (m *DailyLogRepository) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*bookkeeping.DailyLog, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookkeeping.DailyLog), args.Error(1)
}

func (m *DailyLogRepository) ExistsByDate(ctx context.Context, userID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, date, excludeID)
	return args.Bool(0), args.Error(1)
}

// CRMReportRepository mocks report.CRMReportRepository
type CRMReportRepository struct {
	mock.Mock
}

func (m *CRMReportRepository) GetLeadStats(ctx context.Context, filter report.ReportFilter) (*report.LeadStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.LeadStats), args.Error(1)
}

func (m *CRMReportRepository) CountCustomers(ctx context.Context, filter report.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CRMReportRepository) GetDealStats(ctx context.Context, filter report.ReportFilter) (*report.DealStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DealStats), args.Error(1)
}

func (m *CRMReportRepository) GetOrderStats(ctx context.Context, filter report.ReportFilter) (*report.OrderStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.OrderStats), args.Error(1)
}

func (m *CRMReportRepository) GetCallStats(ctx context.Context, filter report.ReportFilter) (*report.CallStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.CallStats), args.Error(1)
}

func (m *CRMReportRepository) CountProducts(ctx context.Context, filter report.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CRMReportRepository) GetDailyLogTotals(ctx context.Context, filter report.ReportFilter) (*report.DailyLogTotals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DailyLogTotals), args.Error(1)
}

var (
	_ identity.UserRepository            = (*UserRepository)(nil)
	_ company.SettingsRepository         = (*SettingsRepository)(nil)
	_ crm.LeadRepository                 = (*LeadRepository)(nil)
	_ crm.CustomerRepository             = (*CustomerRepository)(nil)
	_ crm.DealRepository                 = (*DealRepository)(nil)
	_ crm.CallRepository                 = (*CallRepository)(nil)
	_ catalog.ProductRepository          = (*ProductRepository)(nil)
	_ catalog.CategoryRepository         = (*CategoryRepository)(nil)
	_ catalog.PriceBookRepository        = (*PriceBookRepository)(nil)
	_ sales.QuotationRepository          = (*QuotationRepository)(nil)
	_ sales.SalesOrderRepository         = (*SalesOrderRepository)(nil)
	_ sales.StockApprovalRepository      = (*StockApprovalRepository)(nil)
	_ purchasing.VendorRepository        = (*VendorRepository)(nil)
	_ purchasing.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)
	_ hr.EmployeeRepository              = (*EmployeeRepository)(nil)
	_ hr.DepartmentRepository            = (*DepartmentRepository)(nil)
	_ hr.PayrollRepository               = (*PayrollRepository)(nil)
	_ bookkeeping.DailyLogRepository     = (*DailyLogRepository)(nil)
	_ report.CRMReportRepository         = (*CRMReportRepository)(nil)
)
