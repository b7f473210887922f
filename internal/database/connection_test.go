package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDialectorNames(t *testing.T) {
	cases := map[string]string{
		"mysql":     "mysql",
		"mariadb":   "mysql",
		"postgres":  "postgres",
		"sqlite":    "sqlite",
		"sqlserver": "sqlserver",
	}
	for dbType, want := range cases {
		cfg := &config.Config{DBType: dbType, DBHost: "db", DBUser: "baker", DBPassword: "p@ss", DBDatabase: "bakery"}
		d, err := Dialector(cfg)
		require.NoError(t, err, dbType)
		assert.Equal(t, want, d.Name(), dbType)
	}
}

func TestDialectorRejectsUnknownType(t *testing.T) {
	_, err := Dialector(&config.Config{DBType: "oracle"})
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "bakery.db"),
		DBConnectionLimit: 5,
	}

	db, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Document{}))
	assert.True(t, db.Migrator().HasTable(&models.BlobObject{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestPortOrDefault(t *testing.T) {
	assert.Equal(t, "3306", portOrDefault("", "3306"))
	assert.Equal(t, "13306", portOrDefault("13306", "3306"))
	assert.False(t, strings.Contains(portOrDefault("", "5432"), ":"))
}
