package models

import (
	"time"
)

// CardResult is the append-only reward ledger. Multiple rows per
// (user, bot) pair are expected — it is a history, not a unique-key
// table: object cards in particular can be earned again and again.
type CardResult struct {
	ID        string   `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string   `gorm:"index;not null" json:"user_id"`
	BotID     string   `gorm:"index;not null" json:"bot_id"`
	Type      CardType `gorm:"type:varchar(16);not null" json:"type"`
	SessionID string   `gorm:"type:uuid" json:"session_id"`

	AchievedDistanceM float64   `json:"achieved_distance_m"`
	TargetDistanceM   float64   `json:"target_distance_m"`
	AchievedAt        time.Time `gorm:"index" json:"achieved_at"`

	Bot *User `gorm:"foreignKey:BotID" json:"bot,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
