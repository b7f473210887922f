// analytics.go
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
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

// AnalyticsHandler handles pageview and event tracking
type AnalyticsHandler struct {
	Service *services.AnalyticsService
	Log     *zap.Logger
}

// TrackResponse acknowledges recorded analytics
type TrackResponse struct {
	Ok       bool `json:"ok"`
	Recorded int  `json:"recorded"`
}

// Summary handles GET /api/analytics
// @Summary Get analytics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AnalyticsSummary
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /analytics [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.Service.Summary(c.UserContext())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "analytics.summary")
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

// Track handles POST /api/analytics
// @Summary Record pageviews or events
// @Description Accepts one record or an array. "type" of pageview goes to pageviews, anything else to events.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param records body object true "Record or array of records"
// @Success 201 {object} TrackResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /analytics [post]
func (h *AnalyticsHandler) Track(c *fiber.Ctx) error {
	var records types.OneOrMany[map[string]any]
	if err := json.Unmarshal(c.Body(), &records); err != nil {
		return utils.ServiceError(c, h.Log, errInvalidBody, "analytics.track")
	}

	recorded, err := h.Service.Track(c.UserContext(), records.Items())
	if err != nil {
		return utils.ServiceError(c, h.Log, err, "analytics.track")
	}
	return c.Status(fiber.StatusCreated).JSON(TrackResponse{Ok: true, Recorded: len(recorded)})
}
