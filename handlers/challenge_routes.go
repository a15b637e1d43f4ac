// handlers/challenge_routes.go
package handlers

import (
	"errors"
	"time"

	"fitness-challenge-system/middleware"
	"fitness-challenge-system/models"
	"fitness-challenge-system/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupChallengeRoutes mounts the read side: current challenge,
// challenge history, the card collection, and notifications. The
// engine only produces these rows; this API renders them.
func SetupChallengeRoutes(app *fiber.App, db *gorm.DB, notificationService *services.NotificationService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/s/challenges/current", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var ch models.Challenge
		err := db.Where("user_id = ? AND status = ?", userID, models.ChallengeStatusActive).
			Order("created_at DESC").
			Preload("Bot").
			First(&ch).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active challenge"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching challenge", "cause": err.Error()})
		}
		return c.JSON(ch)
	})

	secured.Get("/s/challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var challenges []models.Challenge
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(100).
			Preload("Bot").
			Find(&challenges).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching challenges", "cause": err.Error()})
		}
		return c.JSON(challenges)
	})

	secured.Get("/s/cards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var cards []models.CardResult
		if err := db.Where("user_id = ?", userID).
			Order("achieved_at DESC").
			Preload("Bot").
			Find(&cards).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching cards", "cause": err.Error()})
		}
		return c.JSON(cards)
	})

	secured.Get("/s/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		q := db.Where("user_id = ?", userID)
		if c.QueryBool("unread", false) {
			q = q.Where("read_at IS NULL")
		}

		var notifs []models.Notification
		if err := q.Order("created_at DESC").Limit(100).Find(&notifs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching notifications", "cause": err.Error()})
		}
		return c.JSON(notifs)
	})

	secured.Patch("/s/notifications/:id/read", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		marked, err := notificationService.MarkRead(userID, c.Params("id"), time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to mark notification read", "cause": err.Error()})
		}
		if !marked {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found or already read"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
