package hr

import (
	"context"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/hr"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEmployee(t *testing.T, userID uuid.UUID, salary int64) *hr.Employee {
	t.Helper()
	e, err := hr.NewEmployee(userID, "emp-1", "Asha", "Rao")
	require.NoError(t, err)
	require.NoError(t, e.SetSalary(decimal.NewFromInt(salary)))
	return e
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates with upper-cased code", func(t *testing.T) {
		employees := new(mocks.EmployeeRepository)
		departments := new(mocks.DepartmentRepository)
		svc := NewEmployeeService(employees, departments)

		employees.On("ExistsByCode", ctx, userID, "EMP-7", (*uuid.UUID)(nil)).Return(false, nil)
		employees.On("Save", ctx, mock.AnythingOfType("*hr.Employee")).Return(nil)

		resp, err := svc.Create(ctx, userID, EmployeeRequest{
			EmployeeCode: " emp-7 ",
			FirstName:    "Asha",
			LastName:     "Rao",
			Salary:       decimal.NewFromInt(30000),
		})
		require.NoError(t, err)
		assert.Equal(t, "EMP-7", resp.EmployeeCode)
		assert.Equal(t, "Asha Rao", resp.FullName)
		assert.Equal(t, "active", resp.Status)
		employees.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		employees := new(mocks.EmployeeRepository)
		svc := NewEmployeeService(employees, new(mocks.DepartmentRepository))
		employees.On("ExistsByCode", ctx, userID, "EMP-7", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, userID, EmployeeRequest{EmployeeCode: "EMP-7", FirstName: "A"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		employees.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown department", func(t *testing.T) {
		employees := new(mocks.EmployeeRepository)
		departments := new(mocks.DepartmentRepository)
		svc := NewEmployeeService(employees, departments)
		deptID := uuid.New()

		employees.On("ExistsByCode", ctx, userID, "EMP-8", (*uuid.UUID)(nil)).Return(false, nil)
		departments.On("FindByID", ctx, userID, deptID).Return(nil, shared.NotFound("Department"))

		_, err := svc.Create(ctx, userID, EmployeeRequest{EmployeeCode: "EMP-8", FirstName: "B", DepartmentID: &deptID})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	employees := new(mocks.EmployeeRepository)
	svc := NewEmployeeService(employees, new(mocks.DepartmentRepository))

	emp := newEmployee(t, userID, 100)
	isFiltered := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters[hr.FilterStatus] == "inactive"
	})
	employees.On("FindAll", ctx, userID, isFiltered).Return([]hr.Employee{*emp}, nil)
	employees.On("Count", ctx, userID, isFiltered).Return(int64(1), nil)

	page, err := svc.List(ctx, userID, EmployeeListFilter{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, emp.ID, page.Items[0].ID)
}

func TestDepartmentService_Members(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("adds an existing employee", func(t *testing.T) {
		departments := new(mocks.DepartmentRepository)
		employees := new(mocks.EmployeeRepository)
		svc := NewDepartmentService(departments, employees)

		dept, err := hr.NewDepartment(userID, "Sales", "")
		require.NoError(t, err)
		emp := newEmployee(t, userID, 100)
		departments.On("FindByID", ctx, userID, dept.ID).Return(dept, nil)
		employees.On("FindByID", ctx, userID, emp.ID).Return(emp, nil)
		departments.On("Save", ctx, dept).Return(nil)

		resp, err := svc.AddMember(ctx, userID, dept.ID, DepartmentMemberRequest{EmployeeID: emp.ID})
		require.NoError(t, err)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, emp.ID, resp.Members[0].EmployeeID)
		assert.Equal(t, hr.DefaultMemberRole, resp.Members[0].Role)
	})

	t.Run("rejects unknown employee", func(t *testing.T) {
		departments := new(mocks.DepartmentRepository)
		employees := new(mocks.EmployeeRepository)
		svc := NewDepartmentService(departments, employees)

		dept, err := hr.NewDepartment(userID, "Sales", "")
		require.NoError(t, err)
		missing := uuid.New()
		departments.On("FindByID", ctx, userID, dept.ID).Return(dept, nil)
		employees.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Employee"))

		_, err = svc.AddMember(ctx, userID, dept.ID, DepartmentMemberRequest{EmployeeID: missing})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		departments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name      string
		frequency string
		override  *decimal.Decimal
		wantBasic string
	}{
		{name: "monthly uses salary", frequency: "", wantBasic: "30000"},
		{name: "weekly quarters salary", frequency: "weekly", wantBasic: "7500"},
		{name: "daily divides by thirty", frequency: "daily", wantBasic: "1000"},
		{name: "override replaces salary", frequency: "weekly", override: decimalPtr(decimal.NewFromInt(40000)), wantBasic: "10000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payrolls := new(mocks.PayrollRepository)
			employees := new(mocks.EmployeeRepository)
			svc := NewPayrollService(payrolls, employees)

			emp := newEmployee(t, userID, 30000)
			employees.On("FindByID", ctx, userID, emp.ID).Return(emp, nil)
			payrolls.On("Save", ctx, mock.AnythingOfType("*hr.PayrollRecord")).Return(nil)

			resp, err := svc.Create(ctx, userID, PayrollRequest{
				EmployeeID:  emp.ID,
				Month:       3,
				Year:        2025,
				Frequency:   tc.frequency,
				BasicSalary: tc.override,
				Allowances:  decimal.NewFromInt(500),
				Deductions:  decimal.NewFromInt(200),
			})
			require.NoError(t, err)
			want := decimal.RequireFromString(tc.wantBasic)
			assert.True(t, want.Equal(resp.BasicSalary), "basic %s", resp.BasicSalary)
			assert.True(t, want.Add(decimal.NewFromInt(300)).Equal(resp.NetSalary))
			assert.Equal(t, "pending", resp.Status)
		})
	}

	t.Run("paid without a date is stamped now", func(t *testing.T) {
		payrolls := new(mocks.PayrollRepository)
		employees := new(mocks.EmployeeRepository)
		svc := NewPayrollService(payrolls, employees)
		fixed := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return fixed }

		emp := newEmployee(t, userID, 1000)
		employees.On("FindByID", ctx, userID, emp.ID).Return(emp, nil)
		payrolls.On("Save", ctx, mock.AnythingOfType("*hr.PayrollRecord")).Return(nil)

		resp, err := svc.Create(ctx, userID, PayrollRequest{EmployeeID: emp.ID, Month: 3, Year: 2025, Status: "paid"})
		require.NoError(t, err)
		require.NotNil(t, resp.PaymentDate)
		assert.True(t, fixed.Equal(*resp.PaymentDate))
	})

	t.Run("unknown employee", func(t *testing.T) {
		payrolls := new(mocks.PayrollRepository)
		employees := new(mocks.EmployeeRepository)
		svc := NewPayrollService(payrolls, employees)
		missing := uuid.New()
		employees.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Employee"))

		_, err := svc.Create(ctx, userID, PayrollRequest{EmployeeID: missing, Month: 1, Year: 2025})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestPayrollService_Analytics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	payrolls := new(mocks.PayrollRepository)
	svc := NewPayrollService(payrolls, new(mocks.EmployeeRepository))
	svc.SetLocation(time.UTC)

	empID := uuid.New()
	paidAt := time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)
	paid, err := hr.NewPayrollRecord(userID, empID, 2, 2025, decimal.NewFromInt(1000), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, paid.SetStatus(hr.PayrollStatusPaid, paidAt))
	pending, err := hr.NewPayrollRecord(userID, empID, 3, 2025, decimal.NewFromInt(400), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	payrolls.On("FindInRange", ctx, userID, shared.StartOfDay(from), shared.EndOfDay(to)).
		Return([]hr.PayrollRecord{*paid, *pending}, nil)

	resp, err := svc.Analytics(ctx, userID, PayrollAnalyticsRequest{From: &from, To: &to})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.TotalPaid))
	assert.True(t, decimal.NewFromInt(400).Equal(resp.TotalPending))
	assert.Equal(t, 1, resp.PaidCount)
	assert.Equal(t, 1, resp.PendingCount)
	require.Len(t, resp.ByDate, 1)
	assert.Equal(t, "2025-02-28", resp.ByDate[0].Date)
	require.Len(t, resp.ByMonth, 1)
	assert.Equal(t, "2025-02", resp.ByMonth[0].Month)

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.Analytics(ctx, userID, PayrollAnalyticsRequest{From: &to, To: &from})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
