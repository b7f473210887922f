package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/bakery-api/internal/types"
)

// AuthAdmin guards admin routes with a static bearer token.
// An empty token leaves the routes open.
func AuthAdmin(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}
		return authorize(c, token, "authorization.admin")
	}
}

// authorize performs the bearer token check
func authorize(c *fiber.Ctx, token, errorType string) error {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, presented, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || presented == "" {
		c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="bakery-api"`)
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authorization bearer token required",
			Type:    errorType,
		}
	}

	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(presented)), []byte(token)) != 1 {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Invalid authorization token",
			Type:    errorType,
		}
	}

	c.Locals("admin", true)
	return c.Next()
}
