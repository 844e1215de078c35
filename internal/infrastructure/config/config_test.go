package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "crm-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "crm", cfg.Database.DBName)
		assert.Equal(t, DefaultJWTSecret, cfg.JWT.Secret)
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "0 20 * * 5", cfg.Scheduler.WeeklyReportCron)
		assert.Equal(t, 5*time.Minute, cfg.Report.CacheTTL)
		assert.Equal(t, "crm-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CRM_APP_PORT", "9000")
		t.Setenv("CRM_DATABASE_DRIVER", "sqlite")
		t.Setenv("CRM_DATABASE_SQLITE_PATH", "/tmp/test.db")
		t.Setenv("CRM_REPORT_CACHE_TTL", "90s")
		t.Setenv("CRM_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
		assert.Equal(t, 90*time.Second, cfg.Report.CacheTTL)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CRM_DATABASE_DRIVER", "mysql")

		_, err := Load()
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("production requires a real secret", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("CRM_APP_ENV", "production")
		t.Setenv("CRM_DATABASE_SSLMODE", "require")

		_, err := Load()
		assert.ErrorContains(t, err, "jwt.secret")

		t.Setenv("CRM_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "crm", Password: "p@ss word", DBName: "crm", SSLMode: "disable"}
	assert.Equal(t, "postgres://crm:p%40ss%20word@db:5432/crm?sslmode=disable", d.DSN())

	lite := DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/crm.db"}
	assert.True(t, lite.IsSQLite())
	assert.Equal(t, "file:/tmp/crm.db?_foreign_keys=on", lite.DSN())
}

func TestAppLocation(t *testing.T) {
	assert.Equal(t, "Asia/Kolkata", AppConfig{Timezone: "Asia/Kolkata"}.Location().String())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Not/AZone"}.Location())
}
