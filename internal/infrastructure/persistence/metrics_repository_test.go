package persistence

import (
	"context"
	"testing"

	"github.com/crmdesk/backend/internal/domain/catalog"
	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRepository_CRMSnapshot(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	leads := NewGormLeadRepository(db)
	require.NoError(t, leads.Save(ctx, newLead(t, alice, "Asha", "", crm.LeadSourceWebsite)))
	require.NoError(t, leads.Save(ctx, newLead(t, bob, "Ravi", "", crm.LeadSourceWebsite)))

	deals := NewGormDealRepository(db)
	open, err := crm.NewDeal(alice, "Annual contract", decimal.NewFromInt(50000))
	require.NoError(t, err)
	require.NoError(t, deals.Save(ctx, open))
	won, err := crm.NewDeal(bob, "Pilot", decimal.NewFromInt(9000))
	require.NoError(t, err)
	require.NoError(t, won.MoveTo(crm.DealStageClosedWon))
	require.NoError(t, deals.Save(ctx, won))

	products := NewGormProductRepository(db)
	empty, err := catalog.NewProduct(alice, "Widget")
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, empty))
	stocked, err := catalog.NewProduct(bob, "Gadget")
	require.NoError(t, err)
	require.NoError(t, stocked.SetStock(3))
	require.NoError(t, products.Save(ctx, stocked))

	snap, err := NewGormMetricsRepository(db).CRMSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), snap.LeadsByStatus[string(crm.LeadStatusNew)])
	assert.Equal(t, int64(1), snap.DealsByStage[string(crm.DealStageClosedWon)])
	assert.InDelta(t, 50000, snap.OpenPipelineValue, 0.001)
	assert.Equal(t, int64(1), snap.OutOfStock)
	assert.Equal(t, int64(0), snap.PendingApprovals)
}
