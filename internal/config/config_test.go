package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, "tm.sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Storage.UploadExpiry)
	assert.Equal(t, 10, cfg.Tasks.DefaultLimit)
	assert.Equal(t, 100, cfg.Tasks.MaxLimit)
	assert.NotEmpty(t, cfg.Session.Secret)
	assert.Contains(t, cfg.Database.URL, "postgres://")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "Mongo")
	t.Setenv("SESSION_STORE", "bolt")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("TASKS_DEFAULT_LIMIT", "20")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, SessionStoreBolt, cfg.Session.Store)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 20, cfg.Tasks.DefaultLimit)
	assert.Equal(t, "0.0.0.0:9000", cfg.Address())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "SESSION_SECRET")
	assert.ErrorContains(t, err, "S3_BUCKET_NAME")
}
