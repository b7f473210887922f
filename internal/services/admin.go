// admin.go
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

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/types"
	"go.uber.org/zap"
)

// MigrationReport counts what a migration copied
type MigrationReport struct {
	Documents int `json:"documents"`
	Blobs     int `json:"blobs"`
	Skipped   int `json:"skipped"`
}

// Seed reads every collection, writing the defaults of those never written
func (s *Services) Seed(ctx context.Context) error {
	steps := []struct {
		name string
		list func(context.Context) error
	}{
		{"products", func(ctx context.Context) error { _, err := s.Products.List(ctx); return err }},
		{"reviews", func(ctx context.Context) error { _, err := s.Reviews.List(ctx); return err }},
		{"gallery", func(ctx context.Context) error { _, err := s.Gallery.List(ctx); return err }},
		{"contact", func(ctx context.Context) error { _, err := s.Contact.List(ctx); return err }},
		{"analytics", func(ctx context.Context) error { _, err := s.Analytics.Summary(ctx); return err }},
		{"users", func(ctx context.Context) error { _, err := s.Users.List(ctx); return err }},
	}
	for _, step := range steps {
		if err := step.list(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}
	return nil
}

// Export returns every stored document by name; documents never written are left out
func Export(ctx context.Context, store storage.Store) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(Documents))
	for _, name := range Documents {
		raw, err := store.Get(ctx, name)
		if errors.Is(err, types.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, types.Unavailable("export "+name, err)
		}
		if !json.Valid(raw) {
			return nil, types.Unavailable("export "+name, fmt.Errorf("document is not valid JSON"))
		}
		out[name] = raw
	}
	return out, nil
}

// Migrate copies every document and uploaded gallery image from src to dst,
// replacing what dst holds under the same names
func Migrate(ctx context.Context, src, dst storage.Backend, log *zap.Logger) (MigrationReport, error) {
	var report MigrationReport

	docs, err := Export(ctx, src)
	if err != nil {
		return report, err
	}

	for _, name := range Documents {
		raw, ok := docs[name]
		if !ok {
			report.Skipped++
			continue
		}
		err := dst.Update(ctx, name, func([]byte, bool) ([]byte, error) {
			return raw, nil
		})
		if err != nil {
			return report, fmt.Errorf("write %s: %w", name, err)
		}
		report.Documents++
		log.Info("migrated document", zap.String("document", name), zap.Int("bytes", len(raw)))
	}

	raw, ok := docs["gallery"]
	if !ok {
		return report, nil
	}
	var images []models.GalleryImage
	if err := json.Unmarshal(raw, &images); err != nil {
		return report, types.Unavailable("decode gallery", err)
	}

	for _, img := range images {
		if storage.ValidKey(img.ID) != nil {
			report.Skipped++
			continue
		}
		blob, err := src.GetBlob(ctx, img.ID)
		if errors.Is(err, types.ErrNotFound) {
			// default images are served as static files
			report.Skipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read image %s: %w", img.ID, err)
		}
		if err := dst.PutBlob(ctx, img.ID, blob.ContentType, blob.Data); err != nil {
			return report, fmt.Errorf("write image %s: %w", img.ID, err)
		}
		report.Blobs++
	}

	log.Info("migration complete",
		zap.String("from", src.Name()),
		zap.String("to", dst.Name()),
		zap.Int("documents", report.Documents),
		zap.Int("blobs", report.Blobs),
	)
	return report, nil
}
