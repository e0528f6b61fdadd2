package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/service/auth"
)

const (
	UserContextKey   = "user"
	UserIDContextKey = "user_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		profile, err := authService.GetProfileByID(c.Context(), claims.UserID)
		if err != nil || profile == nil {
			return Unauthorized("User not found")
		}

		c.Locals(UserContextKey, profile)
		c.Locals(UserIDContextKey, profile.ID)

		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.Profile {
	profile, ok := c.Locals(UserContextKey).(*domain.Profile)
	if !ok {
		return nil
	}
	return profile
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
