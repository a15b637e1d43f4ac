// services/bots.go
package services

import (
	"fmt"
	"path/filepath"
	"time"

	"fitness-challenge-system/models"
	"fitness-challenge-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// BotService covers the admin side: managing the bot roster, seasons,
// and bot card artwork. Handler-shaped methods, mounted under /s/admin.
type BotService struct {
	DB *gorm.DB
}

func NewBotService(db *gorm.DB) *BotService {
	return &BotService{DB: db}
}

var validCardTypes = map[models.CardType]bool{
	models.CardTypeDefi:      true,
	models.CardTypeObjet:     true,
	models.CardTypeEvenement: true,
	models.CardTypeRare:      true,
}

// CreateBot registers a new opponent bot.
func (s *BotService) CreateBot(c *fiber.Ctx) error {
	var req struct {
		Username        string          `json:"username"`
		CardType        models.CardType `json:"card_type"`
		EventDate       *time.Time      `json:"event_date"`
		DropRate        *float64        `json:"drop_rate"`
		TargetDistanceM *float64        `json:"target_distance_m"`
		AvgDistanceM    *float64        `json:"avg_distance_m"`
		SeasonAffinity  *int            `json:"season_affinity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username is required"})
	}
	if !validCardTypes[req.CardType] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "card_type must be one of defi, objet, evenement, rare"})
	}
	if req.CardType == models.CardTypeEvenement && req.EventDate == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event bots need an event_date"})
	}

	bot := models.User{
		ID:              uuid.NewString(),
		Username:        req.Username,
		IsBot:           true,
		CardType:        req.CardType,
		EventDate:       req.EventDate,
		DropRate:        req.DropRate,
		TargetDistanceM: req.TargetDistanceM,
		AvgDistanceM:    req.AvgDistanceM,
		SeasonAffinity:  req.SeasonAffinity,
	}
	if err := s.DB.Create(&bot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create bot", "cause": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(bot)
}

// ListBots returns the full bot roster.
func (s *BotService) ListBots(c *fiber.Ctx) error {
	var bots []models.User
	if err := s.DB.Where("is_bot = ?", true).Order("username ASC").Find(&bots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list bots", "cause": err.Error()})
	}
	return c.JSON(bots)
}

// UploadArtwork stores a bot's card artwork in R2 and saves the public
// URL on the bot row. Object keys are slugged bot names, so reuploads
// overwrite in place.
func (s *BotService) UploadArtwork(c *fiber.Ctx) error {
	botID := c.Params("id")

	var bot models.User
	if err := s.DB.Where("id = ? AND is_bot = ?", botID, true).First(&bot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bot not found"})
	}

	fileHeader, err := c.FormFile("artwork")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "artwork file is required"})
	}

	key := fmt.Sprintf("cards/%s%s", slug.Make(bot.Username), filepath.Ext(fileHeader.Filename))
	url, err := utils.UploadCardArtwork(fileHeader, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload artwork", "cause": err.Error()})
	}

	if err := s.DB.Model(&bot).Update("avatar_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save artwork URL", "cause": err.Error()})
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}

// CreateSeason defines a new season.
func (s *BotService) CreateSeason(c *fiber.Ctx) error {
	var req struct {
		Number    int       `json:"number"`
		Name      string    `json:"name"`
		StartDate time.Time `json:"start_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Number < 1 || req.StartDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "number and start_date are required"})
	}

	season := models.Season{
		ID:        uuid.NewString(),
		Number:    req.Number,
		Name:      req.Name,
		StartDate: req.StartDate,
	}
	if err := s.DB.Create(&season).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create season", "cause": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(season)
}

// ListSeasons returns all defined seasons, newest first.
func (s *BotService) ListSeasons(c *fiber.Ctx) error {
	var seasons []models.Season
	if err := s.DB.Order("start_date DESC").Find(&seasons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list seasons", "cause": err.Error()})
	}
	return c.JSON(seasons)
}
