package persistence

import (
	"context"
	"time"

	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var employeeSearchColumns = []string{
	"first_name",
	"last_name",
	"first_name || ' ' || last_name",
	"email",
	"employee_code",
	"position",
}

// GormEmployeeRepository implements hr.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	store ownedStore[hr.Employee, models.EmployeeModel]
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	status := equalityFilters(
		filterColumn{hr.FilterStatus, "status"},
		filterColumn{hr.FilterDepartmentID, "department_id"},
	)
	return &GormEmployeeRepository{store: ownedStore[hr.Employee, models.EmployeeModel]{
		db:          db,
		resource:    "Employee",
		toDomain:    (*models.EmployeeModel).ToDomain,
		fromDomain:  models.EmployeeModelFromDomain,
		sortFields:  EmployeeSortFields,
		defaultSort: "created_at",
		filters: func(q *gorm.DB, f shared.Filter) *gorm.DB {
			return employeeSearch(status(q, f), f.Search)
		},
	}}
}

// employeeSearch matches the name, contact and position columns or the
// name of the employee's department.
func employeeSearch(q *gorm.DB, search string) *gorm.DB {
	cond := searchCondition(q, search, employeeSearchColumns...)
	if cond == nil {
		return q
	}
	cond = cond.Or("department_id IN (SELECT id FROM departments WHERE "+likeExpr("name")+")", likePattern(search))
	return q.Where(cond)
}

func (r *GormEmployeeRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*hr.Employee, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormEmployeeRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]hr.Employee, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormEmployeeRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// ExistsByCode checks whether code is taken by another employee of userID
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, userID uuid.UUID, code string, excludeID *uuid.UUID) (bool, error) {
	return r.store.exists(ctx, userID, excludeID, "employee_code = ?", code)
}

func (r *GormEmployeeRepository) Save(ctx context.Context, employee *hr.Employee) error {
	return r.store.save(ctx, employee)
}

// Delete removes an employee together with their payroll records and
// department memberships, and clears them as manager.
func (r *GormEmployeeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(OwnerScope(userID)).Where("employee_id = ?", id).Delete(&models.PayrollRecordModel{}).Error; err != nil {
			return translateError(err, "Employee")
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.DepartmentMemberModel{}).Error; err != nil {
			return translateError(err, "Employee")
		}
		if err := tx.Model(&models.DepartmentModel{}).
			Scopes(OwnerScope(userID)).
			Where("manager_id = ?", id).
			Update("manager_id", nil).Error; err != nil {
			return translateError(err, "Employee")
		}
		scoped := r.store
		scoped.db = tx
		return scoped.delete(ctx, userID, id)
	})
}

// GormDepartmentRepository implements hr.DepartmentRepository using GORM
type GormDepartmentRepository struct {
	store ownedStore[hr.Department, models.DepartmentModel]
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{store: ownedStore[hr.Department, models.DepartmentModel]{
		db:            db,
		resource:      "Department",
		toDomain:      (*models.DepartmentModel).ToDomain,
		fromDomain:    models.DepartmentModelFromDomain,
		sortFields:    DepartmentSortFields,
		defaultSort:   "name",
		searchColumns: []string{"name", "description"},
		preload:       "Members",
		saveChildren: func(tx *gorm.DB, m *models.DepartmentModel) error {
			return replaceChildren(tx, "department_id", m.ID, m.Members)
		},
		deleteChildren: childDeleter[models.DepartmentMemberModel]("department_id"),
	}}
}

func (r *GormDepartmentRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*hr.Department, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormDepartmentRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]hr.Department, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormDepartmentRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// Save writes the department and replaces its member list
func (r *GormDepartmentRepository) Save(ctx context.Context, department *hr.Department) error {
	return r.store.save(ctx, department)
}

// Delete removes a department and clears it from its employees
func (r *GormDepartmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmployeeModel{}).
			Scopes(OwnerScope(userID)).
			Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return translateError(err, "Department")
		}
		scoped := r.store
		scoped.db = tx
		return scoped.delete(ctx, userID, id)
	})
}

// GormPayrollRepository implements hr.PayrollRepository using GORM
type GormPayrollRepository struct {
	store ownedStore[hr.PayrollRecord, models.PayrollRecordModel]
}

// NewGormPayrollRepository creates a new GormPayrollRepository
func NewGormPayrollRepository(db *gorm.DB) *GormPayrollRepository {
	return &GormPayrollRepository{store: ownedStore[hr.PayrollRecord, models.PayrollRecordModel]{
		db:            db,
		resource:      "Payroll record",
		toDomain:      (*models.PayrollRecordModel).ToDomain,
		fromDomain:    models.PayrollRecordModelFromDomain,
		sortFields:    PayrollSortFields,
		defaultSort:   "created_at",
		searchColumns: []string{"notes"},
		filters: equalityFilters(
			filterColumn{hr.FilterEmployeeID, "employee_id"},
			filterColumn{hr.FilterStatus, "status"},
			filterColumn{hr.FilterMonth, "month"},
			filterColumn{hr.FilterYear, "year"},
		),
	}}
}

func (r *GormPayrollRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*hr.PayrollRecord, error) {
	return r.store.findByID(ctx, userID, id)
}

func (r *GormPayrollRepository) FindAll(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]hr.PayrollRecord, error) {
	return r.store.findAll(ctx, userID, filter)
}

func (r *GormPayrollRepository) Count(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	return r.store.count(ctx, userID, filter)
}

// FindInRange returns records paid within [from, to], plus unpaid records
// created within it
func (r *GormPayrollRepository) FindInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]hr.PayrollRecord, error) {
	return r.store.findWhere(ctx, userID, "created_at ASC",
		"(payment_date BETWEEN ? AND ?) OR (payment_date IS NULL AND created_at BETWEEN ? AND ?)",
		from, to, from, to)
}

func (r *GormPayrollRepository) Save(ctx context.Context, record *hr.PayrollRecord) error {
	return r.store.save(ctx, record)
}

func (r *GormPayrollRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.store.delete(ctx, userID, id)
}

var (
	_ hr.EmployeeRepository   = (*GormEmployeeRepository)(nil)
	_ hr.DepartmentRepository = (*GormDepartmentRepository)(nil)
	_ hr.PayrollRepository    = (*GormPayrollRepository)(nil)
)
