package crm

import (
	"context"
	"testing"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/testutil/mocks"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDealService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("with customer", func(t *testing.T) {
		deals := new(mocks.DealRepository)
		customers := new(mocks.CustomerRepository)
		svc := NewDealService(deals, customers)

		customer, err := crm.NewCustomer(userID, "Acme")
		require.NoError(t, err)
		customers.On("FindByID", ctx, userID, customer.ID).Return(customer, nil)
		deals.On("Save", ctx, mock.AnythingOfType("*crm.Deal")).Return(nil)

		resp, err := svc.Create(ctx, userID, DealRequest{
			Title:      "Annual contract",
			CustomerID: &customer.ID,
			Value:      decimal.NewFromInt(250000),
			Stage:      "proposal",
		})
		require.NoError(t, err)
		assert.Equal(t, "proposal", resp.Stage)
		assert.True(t, decimal.NewFromInt(250000).Equal(resp.Value))
		assert.Equal(t, customer.ID, *resp.CustomerID)
	})

	t.Run("unknown customer", func(t *testing.T) {
		deals := new(mocks.DealRepository)
		customers := new(mocks.CustomerRepository)
		svc := NewDealService(deals, customers)

		missing := uuid.New()
		customers.On("FindByID", ctx, userID, missing).Return(nil, shared.NotFound("Customer"))

		_, err := svc.Create(ctx, userID, DealRequest{Title: "X", CustomerID: &missing})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, "Invalid customer", err.Error())
		deals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("negative value", func(t *testing.T) {
		svc := NewDealService(new(mocks.DealRepository), new(mocks.CustomerRepository))
		_, err := svc.Create(ctx, userID, DealRequest{Title: "X", Value: decimal.NewFromInt(-1)})
		require.Error(t, err)
	})
}

func TestCallService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	calls := new(mocks.CallRepository)
	leads := new(mocks.LeadRepository)
	svc := NewCallService(calls, new(mocks.CustomerRepository), leads)

	call, err := crm.NewCall(userID, "Intro", "")
	require.NoError(t, err)
	lead, err := crm.NewLead(userID, "Prospect")
	require.NoError(t, err)

	calls.On("FindByID", ctx, userID, call.ID).Return(call, nil)
	leads.On("FindByID", ctx, userID, lead.ID).Return(lead, nil)
	calls.On("Save", ctx, call).Return(nil)

	resp, err := svc.Update(ctx, userID, call.ID, CallRequest{
		Subject:         "Demo",
		LeadID:          &lead.ID,
		CallType:        "meeting",
		Status:          "completed",
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo", resp.Subject)
	assert.Equal(t, "meeting", resp.CallType)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, lead.ID, *resp.LeadID)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	customers := new(mocks.CustomerRepository)
	svc := NewCustomerService(customers)

	customer, err := crm.NewCustomer(userID, "Old Name")
	require.NoError(t, err)
	customers.On("FindByID", ctx, userID, customer.ID).Return(customer, nil)
	customers.On("Save", ctx, customer).Return(nil)

	resp, err := svc.Update(ctx, userID, customer.ID, CustomerRequest{
		Name:      "New Name",
		City:      "Pune",
		GSTNumber: " 27aapfu0939f1zv ",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, "Pune", resp.City)
	assert.Equal(t, "27AAPFU0939F1ZV", resp.GSTNumber)
}
