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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

// UserHandler handles signed-in visitor sessions
type UserHandler struct {
	Service *services.UserService
	Log     *zap.Logger
}

// List handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "users.list")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Record handles POST /api/users
// @Summary Record a signed-in session
// @Description Upserts the user by email and refreshes the IP derived location
// @Tags Users
// @Accept json
// @Produce json
// @Param session body services.Session true "Profile from the identity provider"
// @Success 201 {object} models.User "first session"
// @Success 200 {object} models.User "returning user"
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Record(c *fiber.Ctx) error {
	var session services.Session
	if err := parseRecord(c, &session); err != nil {
		return utils.ServiceError(c, h.Log, err, "users.record")
	}

	user, created, err := h.Service.Record(c.UserContext(), session, c.IP())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "users.record")
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(user)
}
