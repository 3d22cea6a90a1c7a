package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys diisi oleh middleware AuthJWT.
const (
	LocUserID = "user_id"
	LocRole   = "role"
)

func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return ""
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
