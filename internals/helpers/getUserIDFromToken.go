package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID   = "user_id"
	LocalUserRole = "userRole"
	LocalUserMail = "user_email"

	RoleAdmin = "admin"
)

// GetUserIDFromToken reads the user_id stored by the auth middleware.
// Absent or malformed → 401.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	var raw string
	switch t := c.Locals(LocalUserID).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.ErrUnauthorized
		}
		return t, nil
	case string:
		raw = t
	case []byte:
		raw = string(t)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

// RequireUserID is GetUserIDFromToken plus the bilingual 401 response.
// ok=false means the response has already been written.
func RequireUserID(c *fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, false, JsonErrorMsg(c, fiber.StatusUnauthorized, MsgUnauthorized)
	}
	return id, true, nil
}

func GetUserRole(c *fiber.Ctx) string {
	if r, ok := c.Locals(LocalUserRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(r))
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	role := GetUserRole(c)
	return role == RoleAdmin || role == "service_role"
}

func GetUserEmail(c *fiber.Ctx) string {
	if e, ok := c.Locals(LocalUserMail).(string); ok {
		return e
	}
	return ""
}
