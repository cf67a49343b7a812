package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixisphere/pixisphere-api/internal/utils"
)

func AttachClaims() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := raw.(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		uid := strings.TrimSpace(claims.UserID)
		role := strings.ToLower(strings.TrimSpace(claims.Role))

		if uid == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", uid)
		c.Locals("role", role)

		return c.Next()
	}
}
