// contact.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

// ContactHandler handles contact form routes
type ContactHandler struct {
	Service *services.ContactService
	Log     *zap.Logger
}

// ContactResponse is the reply to a contact form submission
type ContactResponse struct {
	Ok         bool                     `json:"ok"`
	Message    string                   `json:"message"`
	Submission models.ContactSubmission `json:"submission"`
}

// List handles GET /api/contact
// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ContactSubmission
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /contact [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.list")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Submit handles POST /api/contact
// @Summary Send a contact message
// @Description Stores the message when persistence is enabled and emails it to the bakery
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body models.ContactSubmission true "Contact form"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var sub models.ContactSubmission
	if err := parseRecord(c, &sub); err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.submit")
	}

	saved, err := h.Service.Submit(c.UserContext(), sub)
	if err != nil {
		if errors.Is(err, services.ErrDelivery) {
			return utils.ErrorResponse(c, "Failed to send message", fiber.StatusInternalServerError, "contact.submit")
		}
		return utils.ServiceError(c, h.Log, err, "contact.submit")
	}

	return c.Status(fiber.StatusCreated).JSON(ContactResponse{
		Ok:         true,
		Message:    "Message sent",
		Submission: saved,
	})
}

// Update handles PUT /api/contact/:id
// @Summary Update a contact submission
// @Description Typically used to change the status
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string false "Submission ID"
// @Param submission body object true "Fields to change"
// @Success 200 {object} models.ContactSubmission
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /contact/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	patch, err := parseObject(c)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.update")
	}
	id := resourceID(c, patch)
	if id == "" {
		return missingID(c, "contact.update")
	}

	updated, err := h.Service.Update(c.UserContext(), id, patch)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.update")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE /api/contact/:id
// @Summary Delete a contact submission
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path string false "Submission ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /contact/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	body, err := parseObject(c)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.delete")
	}
	id := resourceID(c, body)
	if id == "" {
		return missingID(c, "contact.delete")
	}

	removed, err := h.Service.Delete(c.UserContext(), id)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "contact.delete")
	}
	return utils.MutationSuccessResponse(c, "Submission deleted", removed)
}
