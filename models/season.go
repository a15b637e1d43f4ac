package models

import (
	"time"
)

// Season is a time period that boosts season-affiliated bots. The
// active season on a date is the one with the greatest start date ≤
// that date; no qualifying season is a valid, common state.
type Season struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Number    int       `gorm:"uniqueIndex;not null" json:"number"`
	Name      string    `json:"name"`
	StartDate time.Time `gorm:"index;not null" json:"start_date"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
