package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func isUniqueViolation(err error) bool {
	// postgres unique violation
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}

func getAuth(c *fiber.Ctx) (uuid.UUID, error) {
	rawID, ok := c.Locals("userId").(string)
	if !ok || rawID == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	uID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}
	return uID, nil
}
