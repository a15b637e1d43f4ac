// services/season.go
package services

import (
	"errors"
	"time"

	"fitness-challenge-system/models"

	"gorm.io/gorm"
)

// ResolveSeason returns the season with the greatest start date ≤ the
// given date, or nil when none qualifies. No season is a valid, common
// state: season-free bots stay eligible, season-restricted ones drop
// out of the pools.
func ResolveSeason(db *gorm.DB, date time.Time) (*models.Season, error) {
	var season models.Season
	err := db.Where("start_date <= ?", dateOnly(date)).
		Order("start_date DESC").
		First(&season).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &season, nil
}
