package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixisphere/pixisphere-api/internal/utils"
)

// Protect reads the Authorization header and stores the parsed claims in
// locals for the rest of the chain.
func Protect(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, no token")
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authorized, token failed")
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
