package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixisphere/pixisphere-api/internal/utils"
)

func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := raw.(*utils.Claims)
		if !ok || claims == nil {
			return fiber.ErrUnauthorized
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized, role not allowed")
		}

		return c.Next()
	}
}
