// reviews.go
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
	"time"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// ReviewService manages customer testimonials, newest first
type ReviewService struct {
	items *Collection[models.Review, *models.Review]
	now   func() time.Time
}

// NewReviewService creates the reviews service
func NewReviewService(store storage.Store, log *zap.Logger) *ReviewService {
	return &ReviewService{
		items: NewCollection[models.Review](store, log, CollectionOptions[models.Review]{
			Document: "reviews",
			Seed:     seedFrom[models.Review]("reviews"),
			Prepend:  true,
		}),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// List returns the reviews, most recent first
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.items.List(ctx)
}

// Create stores a new review. Reviews are never verified on submission.
func (s *ReviewService) Create(ctx context.Context, r models.Review) (models.Review, error) {
	r.ID = ""
	r.Name = plainText(r.Name)
	r.Comment = plainText(r.Comment)
	r.Verified = false
	r.CreatedAt = s.now()
	return s.items.Create(ctx, r)
}
