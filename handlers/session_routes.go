// handlers/session_routes.go
package handlers

import (
	"time"

	"fitness-challenge-system/middleware"
	"fitness-challenge-system/models"
	"fitness-challenge-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSessionRoutes mounts the session API. Input validation (date
// format, positive distance, session type) lives here — the engine
// behind CreateSession assumes an already-validated tuple.
func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/s/sessions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Date      string  `json:"date"` // YYYY-MM-DD
			DistanceM float64 `json:"distance_m"`
			Type      string  `json:"type"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		if req.DistanceM <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "distance_m must be positive"})
		}

		typ := models.SessionType(req.Type)
		if typ == "" {
			typ = models.SessionTypeRun
		}
		if typ != models.SessionTypeRun && typ != models.SessionTypeSwim {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be run or swim"})
		}

		session, result, err := sessionService.CreateSession(userID, date, req.DistanceM, typ)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record session",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"session": session,
			"rewards": result,
		})
	})

	secured.Get("/s/sessions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit := c.QueryInt("limit", 50)

		sessions, err := sessionService.ListSessions(userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list sessions",
				"cause": err.Error(),
			})
		}
		return c.JSON(sessions)
	})
}
