// sql_test.go
//
// Storefront data service for the bakery brand site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of bakery-api.
// bakery-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// bakery-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with bakery-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package storage_test

import (
	"context"
	"testing"

	"github.com/localnerve/bakery-api/internal/database"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/storage/storagetest"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each sqlite :memory: connection is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestSQLStore(t *testing.T) {
	storagetest.Run(t, storage.NewSQLStore(setupTestDB(t)))
}

func TestSQLStoreVersionAdvancesPerWrite(t *testing.T) {
	store := storage.NewSQLStore(setupTestDB(t))
	ctx := context.Background()

	version, err := store.Version(ctx, "products")
	require.NoError(t, err)
	assert.Zero(t, version)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Update(ctx, "products", func([]byte, bool) ([]byte, error) {
			return []byte(`[]`), nil
		}))
	}

	version, err = store.Version(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), version)
}

func TestSQLStoreCloseLeavesBorrowedConnection(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewSQLStore(db)
	require.NoError(t, store.Close())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestSQLStoreFirstWriteLocksAnExistingRow(t *testing.T) {
	db := setupTestDB(t)
	store := storage.NewSQLStore(db)
	ctx := context.Background()

	// a competing writer already inserted the lock row but has not written yet
	require.NoError(t, db.Create(&models.Document{DocumentName: "reviews"}).Error)

	_, err := store.Get(ctx, "reviews")
	assert.ErrorIs(t, err, types.ErrNotFound)

	var sawFound bool
	require.NoError(t, store.Update(ctx, "reviews", func(current []byte, found bool) ([]byte, error) {
		sawFound = found
		assert.Nil(t, current)
		return []byte(`[{"id":"1"}]`), nil
	}))
	assert.False(t, sawFound)

	got, err := store.Get(ctx, "reviews")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	version, err := store.Version(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	var rows int64
	require.NoError(t, db.Model(&models.Document{}).Where("document_name = ?", "reviews").Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSQLStoreNoChangeLeavesDocumentAbsent(t *testing.T) {
	store := storage.NewSQLStore(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, "gallery", func([]byte, bool) ([]byte, error) {
		return nil, storage.ErrNoChange
	}))

	_, err := store.Get(ctx, "gallery")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
