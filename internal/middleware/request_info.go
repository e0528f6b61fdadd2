package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	IPContextKey        = "client_ip"
	UserAgentContextKey = "client_user_agent"
)

// RequestInfo captures the real client IP (Cloudflare header first) and
// User-Agent for terms agreements and session records.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			ip = c.Get("X-Forwarded-For")
		}
		if ip == "" {
			ip = c.IP()
		}

		c.Locals(IPContextKey, ip)
		c.Locals(UserAgentContextKey, c.Get("User-Agent"))

		return c.Next()
	}
}

func GetIPAddress(c *fiber.Ctx) string {
	ip, _ := c.Locals(IPContextKey).(string)
	return ip
}

func GetUserAgent(c *fiber.Ctx) string {
	ua, _ := c.Locals(UserAgentContextKey).(string)
	return ua
}
