package models

import (
	"time"
)

type NotificationType string

const (
	NotificationChallengeStart   NotificationType = "challenge_start"
	NotificationEventStart       NotificationType = "event_start"
	NotificationChallengeSuccess NotificationType = "challenge_success"
	NotificationEventSuccess     NotificationType = "event_success"
)

// Notification is append-only per user; the only mutation ever applied
// is setting ReadAt.
type Notification struct {
	ID       string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string           `gorm:"index;not null" json:"user_id"`
	Type     NotificationType `gorm:"type:varchar(32);not null;index" json:"type"`
	Title    string           `gorm:"not null" json:"title"`
	Body     string           `gorm:"type:text" json:"body"`
	Metadata string           `gorm:"type:jsonb" json:"metadata,omitempty"` // e.g., {"challenge_id": "...", "bot_id": "..."}
	ReadAt   *time.Time       `json:"read_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
