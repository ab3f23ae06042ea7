package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/trungnb/gigfeed/internal/logger"
)

// HeaderAPIKey is the header carrying the admin API key.
const HeaderAPIKey = "X-API-Key"

// NewAuth returns a middleware that admits only requests presenting the
// configured admin API key. With an empty key the protected surface is
// disabled entirely.
func NewAuth(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(HeaderAPIKey)

		if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			logger.Get().Warn().
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Authentication failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or missing API Key",
			})
		}

		return c.Next()
	}
}
