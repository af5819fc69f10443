package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://fleet@localhost/fleet")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "sb-access-token", cfg.Auth.CookieName)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Upload.MaxFiles)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsTTL)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestLoadRequiresIdentitySource(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://fleet@localhost/fleet")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("IDENTITY_SERVICE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
}

func TestLoadS3RequiresBucket(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://fleet@localhost/fleet")
	t.Setenv("IDENTITY_SERVICE_URL", "https://id.example.com/")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("S3_REGION", "eu-west-1")

	_, err := Load()
	assert.ErrorContains(t, err, "S3_BUCKET")

	t.Setenv("S3_BUCKET", "fleet-docs")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://id.example.com", cfg.Auth.IdentityServiceURL)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
}
