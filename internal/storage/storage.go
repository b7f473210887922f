// storage.go
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

// Package storage persists whole collection documents and gallery blobs.
//
// Every backend implements Update as one atomic read-modify-write so that two
// writers to the same document cannot silently drop each other's changes.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/database"
	"go.uber.org/zap"
)

// ErrNoChange is returned by an UpdateFunc to leave the stored document untouched.
var ErrNoChange = errors.New("no change")

// UpdateFunc receives the current document (found=false when absent) and returns the replacement.
// It may run more than once when a backend retries an optimistic write.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store holds encoded documents by key
type Store interface {
	// Name identifies the backend in logs and health output
	Name() string
	// Get returns the stored document or types.ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Update atomically replaces the document with the result of fn
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
	Close() error
}

// Blob is a stored binary object
type Blob struct {
	ContentType string
	Data        []byte
}

// BlobStore holds binary objects by key
type BlobStore interface {
	PutBlob(ctx context.Context, key, contentType string, data []byte) error
	// GetBlob returns the object or types.ErrNotFound
	GetBlob(ctx context.Context, key string) (*Blob, error)
	// DeleteBlob removes the object; a missing key is not an error
	DeleteBlob(ctx context.Context, key string) error
}

// Backend is a deployment's storage: documents plus blobs
type Backend interface {
	Store
	BlobStore
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,190}$`)

// ValidKey reports whether key is safe to use as a document or blob address.
func ValidKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

// Open creates the backend selected in configuration
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		log.Info("using file storage", zap.String("dir", cfg.DataDir))
		return NewFileStore(cfg.DataDir)

	case config.BackendKV:
		log.Info("using key-value storage", zap.String("prefix", cfg.KVPrefix))
		return NewRedisStore(ctx, cfg.KVURL, cfg.KVToken, cfg.KVPrefix)

	case config.BackendSQL:
		db, err := database.Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("using sql storage", zap.String("type", cfg.DBType))
		return newSQLStore(db, true), nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
