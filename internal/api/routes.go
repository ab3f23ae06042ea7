package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trungnb/gigfeed/internal/middleware"
)

// SetupRoutes configures all the routes for the admin API.
func SetupRoutes(app *fiber.App, commands Commander, adminID int64, apiKey string) {
	handlers := NewHandlers(commands, adminID)

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	v1 := app.Group("/api/v1")

	v1.Get("/health", handlers.HealthCheck)

	pending := v1.Group("/pending", middleware.NewAuth(apiKey))
	{
		pending.Get("", handlers.ListPending)
		pending.Post("/:id/approve", handlers.ApprovePost)
		pending.Post("/:id/reject", handlers.RejectPost)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
