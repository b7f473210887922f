// gallery.go
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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/localnerve/bakery-api/internal/metrics"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"github.com/localnerve/bakery-api/internal/types"
	"go.uber.org/zap"
)

const (
	defaultAlt        = "Gallery image"
	defaultUploadedBy = "anonymous"
)

// Upload is an image posted to the gallery
type Upload struct {
	Data       []byte
	Alt        string
	UploadedBy string
}

// GalleryService manages gallery metadata and the image blobs it points at
type GalleryService struct {
	items    *Collection[models.GalleryImage, *models.GalleryImage]
	blobs    storage.BlobStore
	maxBytes int64
	log      *zap.Logger
	now      func() time.Time
}

// NewGalleryService creates the gallery service; maxBytes of 0 disables the size check
func NewGalleryService(backend storage.Backend, log *zap.Logger, maxBytes int64) *GalleryService {
	return &GalleryService{
		items: NewCollection[models.GalleryImage](backend, log, CollectionOptions[models.GalleryImage]{
			Document:  "gallery",
			Seed:      seedFrom[models.GalleryImage]("gallery"),
			Protected: []string{"url", "contentType", "size", "uploadedAt"},
		}),
		blobs:    backend,
		maxBytes: maxBytes,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ImageURL is where an uploaded image is served from
func ImageURL(id string) string {
	return "/api/gallery/" + id + "/image"
}

// List returns the gallery metadata in upload order
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	return s.items.List(ctx)
}

// Upload stores the image bytes, then records their metadata.
// The blob is removed again when the record cannot be written.
func (s *GalleryService) Upload(ctx context.Context, in Upload) (models.GalleryImage, error) {
	var zero models.GalleryImage

	if len(in.Data) == 0 {
		return zero, types.NewValidationError("image", "image is required")
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return zero, types.NewValidationError("image", fmt.Sprintf("image must be at most %d bytes", s.maxBytes))
	}

	mtype := mimetype.Detect(in.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return zero, types.NewValidationError("image", "file must be an image")
	}

	record := models.GalleryImage{
		ID:          NewID(),
		Alt:         plainText(in.Alt),
		UploadedBy:  plainText(in.UploadedBy),
		UploadedAt:  s.now(),
		ContentType: mtype.String(),
		Size:        int64(len(in.Data)),
	}
	if record.Alt == "" {
		record.Alt = defaultAlt
	}
	if record.UploadedBy == "" {
		record.UploadedBy = defaultUploadedBy
	}
	record.URL = ImageURL(record.ID)

	if err := Validate(&record); err != nil {
		return zero, err
	}

	if err := s.blobs.PutBlob(ctx, record.ID, record.ContentType, in.Data); err != nil {
		return zero, types.Unavailable("store image", err)
	}

	created, err := s.items.Create(ctx, record)
	if err != nil {
		if delErr := s.blobs.DeleteBlob(context.WithoutCancel(ctx), record.ID); delErr != nil {
			s.log.Warn("failed to remove image after metadata write failed",
				zap.String("id", record.ID), zap.Error(delErr))
		}
		return zero, err
	}

	metrics.UploadBytes.Observe(float64(record.Size))
	s.log.Info("gallery image uploaded", zap.String("id", created.ID), zap.Int64("size", created.Size))
	return created, nil
}

// Delete removes the metadata, then the image blob.
// A blob that cannot be removed is logged and left behind.
func (s *GalleryService) Delete(ctx context.Context, id string) (int, error) {
	removed, err := s.items.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if storage.ValidKey(id) != nil {
		return removed, nil
	}
	if err := s.blobs.DeleteBlob(ctx, id); err != nil {
		s.log.Warn("failed to remove gallery image", zap.String("id", id), zap.Error(err))
	}
	return removed, nil
}

// Image returns the stored bytes of a gallery image
func (s *GalleryService) Image(ctx context.Context, id string) (*storage.Blob, error) {
	if storage.ValidKey(id) != nil {
		return nil, types.ErrNotFound
	}
	blob, err := s.blobs.GetBlob(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		return nil, types.Unavailable("read image", err)
	}
	return blob, nil
}
