package crm

import (
	"testing"

	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	userID := uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		lead, err := NewLead(userID, "  Asha Traders ")
		require.NoError(t, err)

		assert.Equal(t, userID, lead.UserID)
		assert.Equal(t, "Asha Traders", lead.Name)
		assert.Equal(t, LeadSourceOther, lead.Source)
		assert.Equal(t, LeadStatusNew, lead.Status)
		assert.Equal(t, DefaultInterestLevel, lead.InterestLevel)
		assert.NotEqual(t, uuid.Nil, lead.ID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewLead(userID, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestLead_Setters(t *testing.T) {
	lead, err := NewLead(uuid.New(), "Ravi")
	require.NoError(t, err)

	t.Run("interest level bounds", func(t *testing.T) {
		assert.NoError(t, lead.SetInterestLevel(1))
		assert.NoError(t, lead.SetInterestLevel(5))
		assert.Error(t, lead.SetInterestLevel(0))
		assert.Error(t, lead.SetInterestLevel(6))
		assert.Equal(t, 5, lead.InterestLevel)
	})

	t.Run("empty source falls back to other", func(t *testing.T) {
		require.NoError(t, lead.SetSource(LeadSourceReferral))
		require.NoError(t, lead.SetSource(""))
		assert.Equal(t, LeadSourceOther, lead.Source)
	})

	t.Run("unknown source", func(t *testing.T) {
		err := lead.SetSource("billboard")
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_SOURCE", de.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		assert.Error(t, lead.SetStatus("archived"))
		assert.NoError(t, lead.SetStatus(LeadStatusContacted))
	})

	t.Run("invalid email", func(t *testing.T) {
		assert.Error(t, lead.SetContact("not-an-email", "", ""))
		require.NoError(t, lead.SetContact("ravi@example.com", " 98450 ", " Ravi & Co "))
		assert.Equal(t, "98450", lead.Phone)
		assert.Equal(t, "Ravi & Co", lead.Company)
	})
}

func TestLead_ConvertToCustomer(t *testing.T) {
	userID := uuid.New()
	lead, err := NewLead(userID, "Meera Exports")
	require.NoError(t, err)
	require.NoError(t, lead.SetContact("meera@example.com", "9000000000", "Meera Exports Pvt Ltd"))

	customer, err := lead.ConvertToCustomer()
	require.NoError(t, err)

	assert.Equal(t, LeadStatusQualified, lead.Status)
	assert.Equal(t, userID, customer.UserID)
	assert.Equal(t, "Meera Exports", customer.Name)
	assert.Equal(t, "meera@example.com", customer.Email)
	assert.Equal(t, "9000000000", customer.Phone)
	assert.Equal(t, "Meera Exports Pvt Ltd", customer.Company)
	assert.NotEqual(t, lead.ID, customer.ID)
}

func TestCustomer_CityLine(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Kiran")
	require.NoError(t, err)

	assert.Equal(t, "", c.CityLine())
	c.SetAddress("12 MG Road", "Bengaluru", "", "560001")
	assert.Equal(t, "Bengaluru, 560001", c.CityLine())
}

func TestDeal(t *testing.T) {
	userID := uuid.New()

	t.Run("starts in prospecting", func(t *testing.T) {
		d, err := NewDeal(userID, "Annual contract", decimal.NewFromInt(50000))
		require.NoError(t, err)
		assert.Equal(t, DealStageProspecting, d.Stage)
		assert.True(t, d.IsActive())
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := NewDeal(userID, "Refund", decimal.NewFromInt(-1))
		require.Error(t, err)
	})

	t.Run("won and lost", func(t *testing.T) {
		d, err := NewDeal(userID, "Pilot", decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, d.MoveTo(DealStageClosedWon))
		assert.True(t, d.IsWon())
		assert.False(t, d.IsActive())

		require.NoError(t, d.MoveTo(DealStageClosedLost))
		assert.True(t, d.IsLost())

		assert.Error(t, d.MoveTo("won"))
	})
}

func TestCall(t *testing.T) {
	userID := uuid.New()

	c, err := NewCall(userID, "Demo", "")
	require.NoError(t, err)
	assert.Equal(t, CallTypeCall, c.CallType)
	assert.Equal(t, CallStatusScheduled, c.Status)

	assert.Error(t, c.SetType("video"))
	assert.NoError(t, c.SetType(CallTypeMeeting))
	assert.Error(t, c.SetDuration(-5))
	assert.NoError(t, c.SetStatus(CallStatusCompleted))
	assert.True(t, c.IsCompleted())

	_, err = NewCall(userID, "", CallTypeCall)
	assert.Error(t, err)
}
