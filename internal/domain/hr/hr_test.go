package hr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewEmployee(t *testing.T) {
	e, err := NewEmployee(uuid.New(), " emp-001 ", "Priya", "Sharma")
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", e.EmployeeCode)
	assert.Equal(t, "Priya Sharma", e.FullName())
	assert.True(t, e.IsActive())

	_, err = NewEmployee(uuid.New(), "", "A", "B")
	assert.Error(t, err)
	_, err = NewEmployee(uuid.New(), "E1", " ", "B")
	assert.Error(t, err)

	assert.Error(t, e.SetSalary(d("-1")))
	assert.Error(t, e.SetStatus("retired"))
}

func TestDepartment_Members(t *testing.T) {
	dept, err := NewDepartment(uuid.New(), "Sales", "")
	require.NoError(t, err)

	emp := uuid.New()
	m := dept.AddMember(emp, "")
	assert.Equal(t, DefaultMemberRole, m.Role)
	assert.Equal(t, dept.ID, m.DepartmentID)

	dept.AddMember(emp, "lead")
	require.Len(t, dept.Members, 1)
	assert.Equal(t, "lead", dept.Members[0].Role)

	require.NoError(t, dept.RemoveMember(emp))
	assert.Error(t, dept.RemoveMember(emp))
}

func TestBasicPay(t *testing.T) {
	tests := []struct {
		freq PayFrequency
		want string
	}{
		{"", "30000"},
		{PayFrequencyMonthly, "30000"},
		{PayFrequencyWeekly, "7500"},
		{PayFrequencyDaily, "1000"},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			got, err := BasicPay(d("30000"), tt.freq)
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}

	_, err := BasicPay(d("1"), "yearly")
	assert.Error(t, err)
}

func TestPayrollRecord(t *testing.T) {
	p, err := NewPayrollRecord(uuid.New(), uuid.New(), 3, 2025, d("20000"), d("1500"), d("700"))
	require.NoError(t, err)
	assert.True(t, d("20800").Equal(p.NetSalary))
	assert.Equal(t, PayrollStatusPending, p.Status)

	now := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	require.NoError(t, p.SetStatus(PayrollStatusPaid, now))
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, now, *p.PaymentDate)

	_, err = NewPayrollRecord(uuid.New(), uuid.New(), 13, 2025, d("1"), d("0"), d("0"))
	assert.Error(t, err)
	_, err = NewPayrollRecord(uuid.New(), uuid.Nil, 1, 2025, d("1"), d("0"), d("0"))
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	userID := uuid.New()
	e1, e2 := uuid.New(), uuid.New()
	day1 := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)

	mk := func(emp uuid.UUID, net string, paidAt *time.Time) PayrollRecord {
		r, err := NewPayrollRecord(userID, emp, 1, 2025, d(net), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		if paidAt != nil {
			require.NoError(t, r.SetStatus(PayrollStatusPaid, *paidAt))
		}
		return *r
	}

	got := Analyze([]PayrollRecord{
		mk(e1, "1000", &day1),
		mk(e2, "2000", &day1),
		mk(e1, "500", &day1),
		mk(e1, "1000", &day2),
		mk(e2, "400", nil),
	}, time.UTC)

	assert.True(t, d("4500").Equal(got.TotalPaid))
	assert.True(t, d("400").Equal(got.TotalPending))
	assert.Equal(t, 4, got.PaidCount)
	assert.Equal(t, 1, got.PendingCount)

	require.Len(t, got.ByDate, 2)
	assert.Equal(t, "2025-01-31", got.ByDate[0].Date)
	assert.Equal(t, 3, got.ByDate[0].Count)
	assert.Equal(t, 2, got.ByDate[0].EmployeeCount)
	assert.True(t, d("3500").Equal(got.ByDate[0].Amount))

	require.Len(t, got.ByMonth, 1, "all records belong to the January payroll")
	assert.Equal(t, "2025-01", got.ByMonth[0].Month)
	assert.Equal(t, 4, got.ByMonth[0].Count)
	assert.True(t, d("4500").Equal(got.ByMonth[0].Amount))
}

func TestAnalyze_MonthsFollowPayrollPeriod(t *testing.T) {
	userID, emp := uuid.New(), uuid.New()

	march, err := NewPayrollRecord(userID, emp, 3, 2025, d("1000"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, march.SetStatus(PayrollStatusPaid, time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)))

	// paid without a recorded date, as imported rows can be
	may, err := NewPayrollRecord(userID, emp, 5, 2025, d("700"), decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	may.Status = PayrollStatusPaid

	got := Analyze([]PayrollRecord{*may, *march}, time.UTC)

	require.Len(t, got.ByMonth, 2)
	assert.Equal(t, "2025-03", got.ByMonth[0].Month)
	assert.True(t, d("1000").Equal(got.ByMonth[0].Amount))
	assert.Equal(t, "2025-05", got.ByMonth[1].Month)
	assert.True(t, d("700").Equal(got.ByMonth[1].Amount))

	require.Len(t, got.ByDate, 1, "only dated payments appear per date")
	assert.Equal(t, "2025-04-02", got.ByDate[0].Date)
	assert.True(t, d("1700").Equal(got.TotalPaid))
}
