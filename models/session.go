package models

import (
	"time"

	"gorm.io/gorm"
)

type SessionType string

const (
	SessionTypeRun  SessionType = "run"
	SessionTypeSwim SessionType = "swim"
)

// Session is one logged sport activity. The engine only reads human
// sessions; bot sessions are written synthetically by the batch.
type Session struct {
	ID        string      `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Date      time.Time   `gorm:"index;not null" json:"date"`
	DistanceM float64     `gorm:"not null" json:"distance_m"`
	Type      SessionType `gorm:"type:varchar(8);not null;default:'run'" json:"type"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
