// handlers/bot_routes.go
package handlers

import (
	"fitness-challenge-system/middleware"
	"fitness-challenge-system/services"

	"github.com/gofiber/fiber/v2"
)

func requireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == "admin" {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
	}
}

// SetupBotRoutes mounts the admin surface: bot roster management,
// seasons, and card artwork uploads.
func SetupBotRoutes(app *fiber.App, botService *services.BotService) {
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), requireAdmin())

	admin.Post("/bots", botService.CreateBot)
	admin.Get("/bots", botService.ListBots)
	admin.Post("/bots/:id/artwork", botService.UploadArtwork)

	admin.Post("/seasons", botService.CreateSeason)
	admin.Get("/seasons", botService.ListSeasons)
}
