// common.go
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
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/localnerve/bakery-api/internal/utils"
	"go.uber.org/zap"
)

var errInvalidBody = types.NewValidationError("", "Invalid request body")

// ErrorHandler renders every error that escapes a handler or middleware
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var customErr *types.CustomError
		if errors.As(err, &customErr) {
			return utils.ErrorResponse(c, customErr.Message, customErr.Code, customErr.Type)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return utils.ErrorResponse(c, fiberErr.Message, fiberErr.Code, "request")
		}

		return utils.ServiceError(c, log, err, "server")
	}
}

// NotFound answers requests for unknown paths
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "Not found: "+c.Path())
}

// methodNotAllowed answers methods a resource does not support
func methodNotAllowed(allowed ...string) fiber.Handler {
	allow := strings.Join(allowed, ", ")
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAllow, allow)
		return utils.ErrorResponse(c, "Method "+c.Method()+" not allowed", fiber.StatusMethodNotAllowed, "method")
	}
}

// parseObject decodes a JSON object body, an empty body is an empty object
func parseObject(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errInvalidBody
	}
	return fields, nil
}

// parseRecord decodes a JSON body into v, reporting a bad field by name when possible
func parseRecord(c *fiber.Ctx, v any) error {
	if err := json.Unmarshal(c.Body(), v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return types.NewValidationError(typeErr.Field, typeErr.Field+" has an invalid value")
		}
		return errInvalidBody
	}
	return nil
}

// resourceID takes the id from the path, the query string or the body, in that order
func resourceID(c *fiber.Ctx, body map[string]json.RawMessage) string {
	if id := strings.TrimSpace(c.Params("id")); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query("id")); id != "" {
		return id
	}
	if raw, ok := body["id"]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func missingID(c *fiber.Ctx, errorType string) error {
	return utils.ValidationErrorResponse(c, types.NewValidationError("id", "id is required"), errorType)
}
