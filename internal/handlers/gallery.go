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

package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

// GalleryHandler handles gallery metadata and image routes
type GalleryHandler struct {
	Service *services.GalleryService
	Log     *zap.Logger
	// MaxBytes caps how much of an uploaded file is read
	MaxBytes int64
}

// List handles GET /api/gallery
// @Summary List gallery images
// @Tags Gallery
// @Produce json
// @Success 200 {array} models.GalleryImage
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /gallery [get]
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.list")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Upload handles POST /api/gallery
// @Summary Upload a gallery image
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Param alt formData string false "Alternative text"
// @Param uploadedBy formData string false "Uploader name"
// @Success 201 {object} models.GalleryImage
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /gallery [post]
func (h *GalleryHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("image")
	if err != nil {
		return utils.ValidationErrorResponse(c, types.NewValidationError("image", "image file is required"), "gallery.upload")
	}

	file, err := header.Open()
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.upload")
	}
	defer file.Close()

	reader := io.Reader(file)
	if h.MaxBytes > 0 {
		// one extra byte lets the service see the file is too large
		reader = io.LimitReader(file, h.MaxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.upload")
	}

	created, err := h.Service.Upload(c.UserContext(), services.Upload{
		Data:       data,
		Alt:        c.FormValue("alt"),
		UploadedBy: c.FormValue("uploadedBy"),
	})
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.upload")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Delete handles DELETE /api/gallery/:id
// @Summary Delete a gallery image
// @Description Removes the metadata and the stored image
// @Tags Gallery
// @Produce json
// @Param id path string false "Image ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	body, err := parseObject(c)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.delete")
	}
	id := resourceID(c, body)
	if id == "" {
		return missingID(c, "gallery.delete")
	}

	removed, err := h.Service.Delete(c.UserContext(), id)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "gallery.delete")
	}
	return utils.MutationSuccessResponse(c, "Image deleted", removed)
}

// Image handles GET /api/gallery/:id/image
// @Summary Get a gallery image
// @Tags Gallery
// @Produce image/png,image/jpeg,image/webp,image/gif
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /gallery/{id}/image [get]
func (h *GalleryHandler) Image(c *fiber.Ctx) error {
	blob, err := h.Service.Image(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return utils.NotFoundResponse(c, "Image not found")
		}
		return utils.ServiceError(c, h.Log, err, "gallery.image")
	}

	c.Set(fiber.HeaderContentType, blob.ContentType)
	// ids are never reused, so the bytes behind a url never change
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Status(fiber.StatusOK).Send(blob.Data)
}
