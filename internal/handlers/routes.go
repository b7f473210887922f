// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/middleware"
	"github.com/localnerve/bakery-api/internal/services"
	"go.uber.org/zap"
)

// RegisterRoutes mounts every resource on router, normally the /api group.
// Methods a resource does not support answer 405.
func RegisterRoutes(router fiber.Router, cfg *config.Config, svc *services.Services, log *zap.Logger) {
	admin := middleware.AuthAdmin(cfg.AdminToken)

	products := &ProductHandler{Service: svc.Products, Log: log}
	router.Get("/products", products.List)
	router.Get("/products/:id", products.Get)
	router.Post("/products", admin, products.Create)
	router.Put("/products/:id?", admin, products.Update)
	router.Delete("/products/:id?", admin, products.Delete)
	router.All("/products/:id?", methodNotAllowed("GET", "POST", "PUT", "DELETE"))

	reviews := &ReviewHandler{Service: svc.Reviews, Log: log}
	router.Get("/reviews", reviews.List)
	router.Post("/reviews", reviews.Create)
	router.All("/reviews", methodNotAllowed("GET", "POST"))

	gallery := &GalleryHandler{Service: svc.Gallery, Log: log, MaxBytes: int64(cfg.UploadLimitMB) << 20}
	router.Get("/gallery/:id/image", gallery.Image)
	router.All("/gallery/:id/image", methodNotAllowed("GET"))
	router.Get("/gallery", gallery.List)
	router.Post("/gallery", gallery.Upload)
	router.Delete("/gallery/:id?", admin, gallery.Delete)
	router.All("/gallery/:id?", methodNotAllowed("GET", "POST", "DELETE"))

	contact := &ContactHandler{Service: svc.Contact, Log: log}
	router.Get("/contact", admin, contact.List)
	router.Post("/contact", contact.Submit)
	router.Put("/contact/:id?", admin, contact.Update)
	router.Delete("/contact/:id?", admin, contact.Delete)
	router.All("/contact/:id?", methodNotAllowed("GET", "POST", "PUT", "DELETE"))

	analytics := &AnalyticsHandler{Service: svc.Analytics, Log: log}
	router.Get("/analytics", admin, analytics.Summary)
	router.Post("/analytics", analytics.Track)
	router.All("/analytics", methodNotAllowed("GET", "POST"))

	users := &UserHandler{Service: svc.Users, Log: log}
	router.Get("/users", admin, users.List)
	router.Post("/users", users.Record)
	router.All("/users", methodNotAllowed("GET", "POST"))

	health := &HealthHandler{Config: cfg, Store: svc.Backend, Log: log}
	router.Get("/health", health.Check)
	router.All("/health", methodNotAllowed("GET"))
}
