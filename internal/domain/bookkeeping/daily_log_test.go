package bookkeeping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewDailyLog(t *testing.T) {
	at := time.Date(2025, 4, 10, 17, 45, 0, 0, time.UTC)
	l, err := NewDailyLog(uuid.New(), at)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), l.LogDate)

	_, err = NewDailyLog(uuid.New(), time.Time{})
	assert.Error(t, err)
}

func TestSetNotesAndExpenses(t *testing.T) {
	l, err := NewDailyLog(uuid.New(), time.Now())
	require.NoError(t, err)

	t.Run("with user notes", func(t *testing.T) {
		require.NoError(t, l.SetNotesAndExpenses("Busy day", []ExpenseItem{
			{Description: "Tea", Amount: d("40")},
			{Description: "", Amount: d("999")},
			{Description: "Courier", Amount: d("120.50")},
		}))
		assert.Equal(t, "Busy day\nExpenses: Tea: ₹40; Courier: ₹120.5", l.Notes)
		assert.True(t, d("160.5").Equal(l.ExpenseAmount))

		assert.Equal(t, "Busy day", l.UserNotes())
		items := l.ExpenseItems()
		require.Len(t, items, 2)
		assert.Equal(t, "Courier", items[1].Description)
		assert.True(t, d("120.5").Equal(items[1].Amount))
	})

	t.Run("without user notes", func(t *testing.T) {
		require.NoError(t, l.SetNotesAndExpenses("", []ExpenseItem{{Description: "Rent", Amount: d("5000")}}))
		assert.Equal(t, "Expenses: Rent: ₹5000", l.Notes)
		assert.Equal(t, "", l.UserNotes())
	})

	t.Run("no items", func(t *testing.T) {
		require.NoError(t, l.SetNotesAndExpenses("quiet", nil))
		assert.Equal(t, "quiet", l.Notes)
		assert.True(t, l.ExpenseAmount.IsZero())
		assert.Empty(t, l.ExpenseItems())
	})

	t.Run("negative amount", func(t *testing.T) {
		assert.Error(t, l.SetNotesAndExpenses("", []ExpenseItem{{Description: "x", Amount: d("-1")}}))
	})
}

func TestParseNotes(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		wantNotes string
		wantItems int
	}{
		{"plain notes", "nothing special", "nothing special", 0},
		{"marker mid-line is text", "Re: Expenses: tbd", "Re: Expenses: tbd", 0},
		{"multi-line notes", "line one\nline two\nExpenses: Fuel: ₹300", "line one\nline two", 1},
		{"missing amount", "Expenses: Misc", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, items := ParseNotes(tt.stored)
			assert.Equal(t, tt.wantNotes, notes)
			assert.Len(t, items, tt.wantItems)
		})
	}
}
