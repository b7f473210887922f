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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

// ReviewHandler handles testimonial routes
type ReviewHandler struct {
	Service *services.ReviewService
	Log     *zap.Logger
}

// List handles GET /api/reviews
// @Summary List reviews
// @Description Newest first
// @Tags Reviews
// @Produce json
// @Success 200 {array} models.Review
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "reviews.list")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Create handles POST /api/reviews
// @Summary Submit a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review, rating 1 to 5"
// @Success 201 {object} models.Review
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var review models.Review
	if err := parseRecord(c, &review); err != nil {
		return utils.ServiceError(c, h.Log, err, "reviews.create")
	}

	created, err := h.Service.Create(c.UserContext(), review)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "reviews.create")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
