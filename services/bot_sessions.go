// services/bot_sessions.go
package services

import (
	"fmt"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnsureBotSession inserts a synthetic session for the bot on the given
// day, unless the bot already logged one — the opposing bot's displayed
// activity must match the challenge it issued, and reruns must not
// duplicate entries. Type defaults to "run".
func EnsureBotSession(db *gorm.DB, botID string, day time.Time, distanceM float64) error {
	start := dateOnly(day)
	end := start.AddDate(0, 0, 1)

	var count int64
	if err := db.Model(&models.Session{}).
		Where("user_id = ? AND date >= ? AND date < ?", botID, start, end).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check bot sessions: %w", err)
	}
	if count > 0 {
		return nil
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    botID,
		Date:      start,
		DistanceM: distanceM,
		Type:      models.SessionTypeRun,
	}
	if err := db.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create bot session: %w", err)
	}
	return nil
}
