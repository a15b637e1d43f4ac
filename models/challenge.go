package models

import (
	"time"

	"gorm.io/gorm"
)

type ChallengeStatus string

const (
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusExpired   ChallengeStatus = "expired"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
)

// challengeTransitions is the full set of legal status edges. Active is
// the only non-terminal state; everything downstream is frozen.
var challengeTransitions = map[ChallengeStatus][]ChallengeStatus{
	ChallengeStatusActive: {
		ChallengeStatusCompleted,
		ChallengeStatusExpired,
		ChallengeStatusCancelled,
	},
}

// CanTransition reports whether from → to is a legal status edge.
func CanTransition(from, to ChallengeStatus) bool {
	for _, next := range challengeTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Challenge is a time-boxed distance goal assigned to one human against
// one bot. At most one active challenge exists per user at any instant;
// rows are never field-edited after creation except for the status
// transition and completion linkage.
type Challenge struct {
	ID     string          `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string          `gorm:"index;not null" json:"user_id"`
	BotID  string          `gorm:"index;not null" json:"bot_id"`
	Type   CardType        `gorm:"type:varchar(16);not null" json:"type"`
	Status ChallengeStatus `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`

	TargetDistanceM float64    `gorm:"not null" json:"target_distance_m"`
	StartDate       time.Time  `gorm:"not null" json:"start_date"`
	DueDate         time.Time  `gorm:"not null" json:"due_date"`
	DueAt           *time.Time `json:"due_at,omitempty"` // timestamp variant, same-day precision for events

	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CompletedSessionID *string    `gorm:"type:uuid" json:"completed_session_id,omitempty"`

	Bot *User `gorm:"foreignKey:BotID" json:"bot,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsEvent reports whether this challenge came from an event bot.
func (c *Challenge) IsEvent() bool {
	return c.Type == CardTypeEvenement
}
