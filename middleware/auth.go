// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const AccountIDKey = "account_id"

// AccountContextMiddleware attaches the account id forwarded by the Gateway
// in X-User-ID. Anonymous requests get an empty account id.
func AccountContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(AccountIDKey, strings.TrimSpace(c.Get("X-User-ID")))
		return c.Next()
	}
}

// RequireAccount rejects requests that carry no account id.
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AccountID(c) == "" {
			log.Printf("❌ [ACCOUNT_CTX] X-User-ID required but missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID: request must come through gateway with auth context",
			})
		}
		return c.Next()
	}
}

func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals(AccountIDKey).(string)
	return id
}
