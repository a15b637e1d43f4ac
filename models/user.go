package models

import (
	"time"

	"gorm.io/gorm"
)

// CardType classifies what a bot hands out when beaten (or crossed, for objets).
type CardType string

const (
	CardTypeDefi      CardType = "defi"
	CardTypeObjet     CardType = "objet"
	CardTypeEvenement CardType = "evenement"
	CardTypeRare      CardType = "rare"
)

// User covers both humans and bots — the two are mutually exclusive via IsBot.
// Bot columns are nullable and ignored for humans.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"index;not null" json:"username"`
	AvatarURL string `gorm:"type:text" json:"avatar_url,omitempty"`
	IsBot     bool   `gorm:"default:false;index" json:"is_bot"`

	// Bot-only attributes
	CardType        CardType   `gorm:"type:varchar(16)" json:"card_type,omitempty"`
	EventDate       *time.Time `json:"event_date,omitempty"`        // single calendar day the event fires
	DropRate        *float64   `json:"drop_rate,omitempty"`         // relative selection weight, defaults to 1
	TargetDistanceM *float64   `json:"target_distance_m,omitempty"` // explicit target, meters (or km, see normalize)
	AvgDistanceM    *float64   `json:"avg_distance_m,omitempty"`    // fallback base for non-event bots
	SeasonAffinity  *int       `json:"season_affinity,omitempty"`   // season number boosting selection

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveDropRate applies the default-1 rule for absent or invalid weights.
func (u *User) EffectiveDropRate() float64 {
	if u.DropRate == nil || *u.DropRate < 0 {
		return 1
	}
	return *u.DropRate
}
