// users.go
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
	"strings"
	"time"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// Session is the profile a signed-in visitor's browser reports
type Session struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// UserService records signed-in visitors, one record per email
type UserService struct {
	items *Collection[models.User, *models.User]
	geo   Geolocator
	log   *zap.Logger
	now   func() time.Time
}

// NewUserService creates the users service. A nil geolocator records every location as unknown.
func NewUserService(store storage.Store, log *zap.Logger, geo Geolocator) *UserService {
	return &UserService{
		items: NewCollection[models.User](store, log, CollectionOptions[models.User]{
			Document: "users",
			IDField:  "email",
		}),
		geo: geo,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// List returns every known user
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.items.List(ctx)
}

// Record upserts the visitor by email, refreshing lastSeen and location.
// created reports whether this is the first session for the email.
func (s *UserService) Record(ctx context.Context, in Session, ip string) (user models.User, created bool, err error) {
	now := s.now()
	candidate := models.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Name:      plainText(in.Name),
		Picture:   strings.TrimSpace(in.Picture),
		FirstSeen: now,
		LastSeen:  now,
	}
	if err := Validate(&candidate); err != nil {
		return candidate, false, err
	}

	// the lookup happens outside the write, Mutate may retry
	candidate.Location = s.locate(ctx, ip)

	_, err = s.items.Mutate(ctx, "record", func(items []models.User) ([]models.User, error) {
		for i := range items {
			if items[i].Email != candidate.Email {
				continue
			}
			u := items[i]
			u.LastSeen = now
			if candidate.Name != "" {
				u.Name = candidate.Name
			}
			if candidate.Picture != "" {
				u.Picture = candidate.Picture
			}
			if candidate.Location != UnknownLocation || u.Location == "" {
				u.Location = candidate.Location
			}
			items[i] = u
			user, created = u, false
			return items, nil
		}
		user, created = candidate, true
		return append(items, candidate), nil
	})
	if err != nil {
		return models.User{}, false, err
	}
	return user, created, nil
}

func (s *UserService) locate(ctx context.Context, ip string) string {
	if s.geo == nil {
		return UnknownLocation
	}
	location, err := s.geo.Locate(ctx, ip)
	if err != nil {
		s.log.Warn("geolocation failed", zap.String("ip", ip), zap.Error(err))
		return UnknownLocation
	}
	return location
}
