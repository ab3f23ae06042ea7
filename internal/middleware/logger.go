package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trungnb/gigfeed/internal/logger"
)

// RequestLogger logs every request with latency, status and caller info.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		event := logger.Get().Info()
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			event = logger.Get().Error().Err(err)
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("Request")

		return err
	}
}

// ErrorHandler converts unhandled errors into JSON responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
