// sql.go
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

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/localnerve/bakery-api/internal/database"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// SQLStore keeps documents and blobs in two tables through gorm.
// Update locks the document row and bumps a version column, the same
// optimistic check the document service has always used.
type SQLStore struct {
	db   *gorm.DB
	owns bool
}

// NewSQLStore wraps a migrated connection; the caller keeps ownership of db.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return newSQLStore(db, false)
}

func newSQLStore(db *gorm.DB, owns bool) *SQLStore {
	return &SQLStore{db: db, owns: owns}
}

func (s *SQLStore) Name() string { return "sql" }

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	var doc models.Document
	err := s.db.WithContext(ctx).
		Clauses(hints.Comment("select", "bakery:get")).
		Where("document_name = ? AND document_version > 0", key).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Body.Bytes(), nil
}

func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ValidKey(key); err != nil {
		return err
	}

	// A row must exist before it can be locked. Version 0 marks a document never written.
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "document_name"}}, DoNothing: true}).
		Create(&models.Document{DocumentName: key, DocumentVersion: 0}).Error
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock and read the current version
		var doc models.Document
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}, hints.Comment("select", "bakery:update")).
			Where("document_name = ?", key).
			First(&doc).Error
		if err != nil {
			return err
		}
		found := doc.DocumentVersion > 0

		var current []byte
		if found {
			current = doc.Body.Bytes()
		}
		next, err := fn(current, found)
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		if err != nil {
			return err
		}

		result := tx.Model(&models.Document{}).
			Where("document_name = ? AND document_version = ?", key, doc.DocumentVersion).
			Updates(map[string]interface{}{
				"body":             models.NewJSON(next),
				"document_version": doc.DocumentVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.ErrConflict
		}
		return nil
	})
}

// Version returns the stored document version, 0 when absent.
func (s *SQLStore) Version(ctx context.Context, key string) (uint64, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).Select("document_version").Where("document_name = ?", key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return doc.DocumentVersion, err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	if !s.owns {
		return nil
	}
	return database.Close(s.db)
}

func (s *SQLStore) PutBlob(ctx context.Context, key, contentType string, data []byte) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&models.BlobObject{
		BlobKey:     key,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}).Error
}

func (s *SQLStore) GetBlob(ctx context.Context, key string) (*Blob, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	var blob models.BlobObject
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Blob{ContentType: blob.ContentType, Data: blob.Data}, nil
}

func (s *SQLStore) DeleteBlob(ctx context.Context, key string) error {
	if err := ValidKey(key); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&models.BlobObject{}).Error
}
