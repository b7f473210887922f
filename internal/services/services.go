// services.go
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

// Package services implements the site's resources on top of a storage backend.
package services

import (
	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// Documents lists every collection document the services persist
var Documents = []string{"products", "reviews", "gallery", "contact", "analytics", "users"}

// Options carries the collaborators and limits the services need beyond storage
type Options struct {
	Mailer              Mailer
	Geolocator          Geolocator
	ContactPersist      bool
	AnalyticsMaxRecords int
	UploadLimit         int64
}

// OptionsFromConfig builds Options for a running server
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Geolocator: &IPAPILocator{
			URLTemplate: cfg.GeoAPIURL,
			Timeout:     cfg.GeoTimeout,
		},
		ContactPersist:      cfg.ContactPersist,
		AnalyticsMaxRecords: cfg.AnalyticsMaxRecords,
		UploadLimit:         int64(cfg.UploadLimitMB) << 20,
	}
	// keep the interface nil when mail is off
	if mailer := NewSMTPMailer(cfg); mailer != nil {
		opts.Mailer = mailer
	}
	return opts
}

// Services is the set of resource services sharing one backend
type Services struct {
	Backend   storage.Backend
	Products  *ProductService
	Reviews   *ReviewService
	Gallery   *GalleryService
	Contact   *ContactService
	Analytics *AnalyticsService
	Users     *UserService
}

// New wires every resource service to backend
func New(backend storage.Backend, log *zap.Logger, opts Options) *Services {
	return &Services{
		Backend:   backend,
		Products:  NewProductService(backend, log),
		Reviews:   NewReviewService(backend, log),
		Gallery:   NewGalleryService(backend, log, opts.UploadLimit),
		Contact:   NewContactService(backend, log, opts.Mailer, opts.ContactPersist),
		Analytics: NewAnalyticsService(backend, log, opts.AnalyticsMaxRecords),
		Users:     NewUserService(backend, log, opts.Geolocator),
	}
}
