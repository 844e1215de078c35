//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/crmdesk/backend/internal/domain/crm"
	"github.com/crmdesk/backend/internal/domain/identity"
	"github.com/crmdesk/backend/internal/domain/sales"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/crmdesk/backend/internal/infrastructure/migration"
	"github.com/crmdesk/backend/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres starts a throwaway PostgreSQL container with the embedded
// migrations applied
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("crm_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty)
	require.NotZero(t, version)

	return db
}

func TestPostgres_Repositories(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := NewGormUserRepository(db)
	owner, err := identity.NewUser("owner@example.com", "s3cret-pass", "Owner")
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, owner))

	t.Run("duplicate email maps to already exists", func(t *testing.T) {
		dup, err := identity.NewUser("owner@example.com", "s3cret-pass", "Copy")
		require.NoError(t, err)
		assert.ErrorIs(t, users.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("lead search is case insensitive", func(t *testing.T) {
		leads := NewGormLeadRepository(db)
		require.NoError(t, leads.Save(ctx, newLead(t, owner.ID, "Asha Rao", "Acme Traders", crm.LeadSourceWebsite)))
		require.NoError(t, leads.Save(ctx, newLead(t, owner.ID, "Vikram", "ACME Foods", crm.LeadSourceReferral)))
		require.NoError(t, leads.Save(ctx, newLead(t, owner.ID, "Meera", "Globex", crm.LeadSourceWebsite)))

		filter := shared.DefaultFilter()
		filter.Search = "acme"
		found, err := leads.FindAll(ctx, owner.ID, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("quotation numbers are unique per user", func(t *testing.T) {
		customer, err := crm.NewCustomer(owner.ID, "Globex")
		require.NoError(t, err)
		require.NoError(t, NewGormCustomerRepository(db).Save(ctx, customer))

		quotations := NewGormQuotationRepository(db)
		issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		first, err := sales.NewQuotation(owner.ID, customer.ID, "QT-2001", issued)
		require.NoError(t, err)
		require.NoError(t, first.ReplaceItems([]sales.LineInput{
			{Description: "Consulting", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("1250.50")},
		}, decimal.Zero))
		require.NoError(t, quotations.Save(ctx, first))

		reloaded, err := quotations.FindByID(ctx, owner.ID, first.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Items, 1)
		assert.True(t, first.TotalAmount.Equal(reloaded.TotalAmount))

		second, err := sales.NewQuotation(owner.ID, customer.ID, "QT-2001", issued)
		require.NoError(t, err)
		assert.ErrorIs(t, quotations.Save(ctx, second), shared.ErrAlreadyExists)
	})

	t.Run("unknown customer is rejected", func(t *testing.T) {
		q, err := sales.NewQuotation(owner.ID, owner.ID, "QT-2002", time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, NewGormQuotationRepository(db).Save(ctx, q), shared.ErrInvalidInput)
	})
}
