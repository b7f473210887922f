package utils_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/localnerve/bakery-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", types.NewValidationError("name", "name is required"), fiber.StatusBadRequest},
		{"not found", fmt.Errorf("lookup: %w", types.ErrNotFound), fiber.StatusNotFound},
		{"conflict", types.ErrConflict, fiber.StatusConflict},
		{"unavailable", types.Unavailable("read products", errors.New("disk")), fiber.StatusServiceUnavailable},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return utils.ServiceError(c, zap.NewNop(), tt.err, "test")
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body utils.ErrorResponseStruct
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Ok)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, "/x", body.URL)
			assert.NotContains(t, body.Message, "disk", "causes stay in the log")
			assert.NotContains(t, body.Message, "boom")
		})
	}
}

func TestMutationSuccessResponse(t *testing.T) {
	app := fiber.New()
	app.Delete("/x", func(c *fiber.Ctx) error {
		return utils.MutationSuccessResponse(c, "Deleted", 0)
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body utils.SuccessResponseStruct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Ok)
	assert.Zero(t, body.AffectedRows)
}
