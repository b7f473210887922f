package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/config"
	"github.com/localnerve/bakery-api/internal/services"
	"github.com/localnerve/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// HealthHandler reports dependency health
type HealthHandler struct {
	Config *config.Config
	Store  storage.Store
	Log    *zap.Logger
}

// Check handles GET /api/health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.Store, h.Log)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
