// file.go
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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/localnerve/bakery-api/internal/types"
)

// FileStore keeps one JSON document per key under a directory, blobs under dir/blobs.
// Writes go through a temp file and rename so readers never see a partial document.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates the directory layout if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "blobs"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) documentPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) blobPath(key string) string {
	return filepath.Join(s.dir, "blobs", key)
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return readFile(s.documentPath(key))
}

func (s *FileStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ValidKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	current, err := readFile(s.documentPath(key))
	found := err == nil
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return err
	}

	next, err := fn(current, found)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}

	return writeFileAtomic(s.dir, s.documentPath(key), next)
}

func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// PutBlob writes the object bytes; the content type is sniffed again on read.
func (s *FileStore) PutBlob(_ context.Context, key, _ string, data []byte) error {
	if err := ValidKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFileAtomic(filepath.Join(s.dir, "blobs"), s.blobPath(key), data)
}

func (s *FileStore) GetBlob(_ context.Context, key string) (*Blob, error) {
	if err := ValidKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := readFile(s.blobPath(key))
	if err != nil {
		return nil, err
	}
	return &Blob{ContentType: mimetype.Detect(data).String(), Data: data}, nil
}

func (s *FileStore) DeleteBlob(_ context.Context, key string) error {
	if err := ValidKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.blobPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, types.ErrNotFound
	}
	return data, err
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
