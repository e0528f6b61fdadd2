package middleware

import (
	"github.com/gofiber/fiber/v2"

	"cadastro-social/internal/domain"
)

func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(required) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

// RequireStaff gates routes to social workers and admins.
func RequireStaff() fiber.Handler {
	return RequireRole(domain.RoleSocialWorker)
}

func GetCurrentUserRole(c *fiber.Ctx) domain.Role {
	user := GetCurrentUser(c)
	if user == nil {
		return ""
	}
	return user.Role
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetCurrentUserRole(c) == domain.RoleAdmin
}

func IsStaff(c *fiber.Ctx) bool {
	return GetCurrentUserRole(c).IsStaff()
}
