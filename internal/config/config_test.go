package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToFileBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KV_URL", "")
	t.Setenv("KV_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.ContactPersist)
	assert.Equal(t, 3*time.Second, cfg.GeoTimeout)
}

func TestLoadSelectsKVWhenBothCredentialsPresent(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KV_URL", "redis://localhost:6379")
	t.Setenv("KV_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendKV, cfg.Backend)
}

func TestLoadKeepsFileWithOnlyOneCredential(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KV_URL", "redis://localhost:6379")
	t.Setenv("KV_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestLoadExplicitBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sql")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "bakery.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQL, cfg.Backend)
}

func TestLoadRejectsIncompleteSettings(t *testing.T) {
	t.Run("sql without database", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "sql")
		t.Setenv("DB_DATABASE", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DATABASE")
	})

	t.Run("kv without token", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "kv")
		t.Setenv("KV_URL", "redis://localhost:6379")
		t.Setenv("KV_TOKEN", "")
		_, err := Load()
		assert.ErrorContains(t, err, "KV_TOKEN")
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "mongo")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported")
	})

	t.Run("smtp without recipient", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "file")
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("CONTACT_TO", "")
		_, err := Load()
		assert.ErrorContains(t, err, "CONTACT_TO")
	})
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BAKERY_TEST_VALUE=sourdough\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BAKERY_TEST_VALUE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "sourdough", os.Getenv("BAKERY_TEST_VALUE"))
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("BAKERY_INT", "nope")
	t.Setenv("BAKERY_BOOL", "maybe")
	t.Setenv("BAKERY_DURATION", "-5s")

	e := env(os.Getenv)
	assert.Equal(t, 7, e.getInt("BAKERY_INT", 7))
	assert.True(t, e.getBool("BAKERY_BOOL", true))
	assert.Equal(t, time.Second, e.getDuration("BAKERY_DURATION", time.Second))
}

func TestLoadFromMap(t *testing.T) {
	values := map[string]string{
		"STORAGE_BACKEND": "sql",
		"DB_TYPE":         "sqlite",
		"DB_DATABASE":     "bakery.db",
	}
	cfg, err := LoadFrom(func(key string) string { return values[key] })
	require.NoError(t, err)
	assert.Equal(t, BackendSQL, cfg.Backend)
	assert.Equal(t, "bakery.db", cfg.DBDatabase)
	assert.Equal(t, "3000", cfg.Port)
}
