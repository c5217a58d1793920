package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserUUID reads the authenticated user id stored in Locals by the
// auth middleware. Returns uuid.Nil for unauthenticated (kiosk) calls.
func GetUserUUID(c *fiber.Ctx) uuid.UUID {
	if raw := c.Locals("user_id"); raw != nil {
		if s, ok := raw.(string); ok {
			if parsed, err := uuid.Parse(s); err == nil {
				return parsed
			}
		}
	}
	return uuid.Nil
}

// GetUserRole reads the role claim stored in Locals. Empty when the
// request is unauthenticated.
func GetUserRole(c *fiber.Ctx) string {
	if raw := c.Locals("userRole"); raw != nil {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail reads the email claim stored in Locals.
func GetUserEmail(c *fiber.Ctx) string {
	if raw := c.Locals("userEmail"); raw != nil {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}
