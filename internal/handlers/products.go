// products.go
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

// ProductHandler handles product catalogue routes
type ProductHandler struct {
	Service *services.ProductService
	Log     *zap.Logger
}

// List handles GET /api/products
// @Summary List products
// @Description Get the product catalogue, seeded with the default range on first use
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.list")
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// Get handles GET /api/products/:id
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.get")
	}
	return c.Status(fiber.StatusOK).JSON(product)
}

// Create handles POST /api/products
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product, name and price are required"
// @Success 201 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product models.Product
	if err := parseRecord(c, &product); err != nil {
		return utils.ServiceError(c, h.Log, err, "products.create")
	}

	created, err := h.Service.Create(c.UserContext(), product)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.create")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update handles PUT /api/products/:id
// @Summary Update a product
// @Description Merge the supplied fields into a product. The id may also be given as a query parameter or body field.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string false "Product ID"
// @Param product body object true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	patch, err := parseObject(c)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.update")
	}
	id := resourceID(c, patch)
	if id == "" {
		return missingID(c, "products.update")
	}

	updated, err := h.Service.Update(c.UserContext(), id, patch)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.update")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE /api/products/:id
// @Summary Delete a product
// @Description Deleting an unknown id succeeds with affectedRows 0
// @Tags Products
// @Produce json
// @Param id path string false "Product ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	body, err := parseObject(c)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.delete")
	}
	id := resourceID(c, body)
	if id == "" {
		return missingID(c, "products.delete")
	}

	removed, err := h.Service.Delete(c.UserContext(), id)
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "products.delete")
	}
	return utils.MutationSuccessResponse(c, "Product deleted", removed)
}
