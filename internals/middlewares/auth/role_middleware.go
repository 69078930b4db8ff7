package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "schooldocs_backend/internals/helpers"
)

// OnlyRoles lets the request through when userRole is one of roles.
func OnlyRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return helper.JsonErrorMsg(c, fiber.StatusUnauthorized, helper.MsgUnauthorized)
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.JsonErrorMsg(c, fiber.StatusForbidden, helper.MsgForbidden)
	}
}

// AdminOnly: catalog writes.
func AdminOnly() fiber.Handler {
	return OnlyRoles(helper.RoleAdmin, "service_role")
}
