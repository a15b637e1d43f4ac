package services

import (
	"testing"
	"time"

	"fitness-challenge-system/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Season{},
		&models.Challenge{},
		&models.CardResult{},
		&models.Notification{},
	))
	return db
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func makeHuman(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := models.User{ID: uuid.NewString(), Username: username}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func makeBot(t *testing.T, db *gorm.DB, username string, cardType models.CardType, mutate func(*models.User)) *models.User {
	t.Helper()
	b := models.User{
		ID:       uuid.NewString(),
		Username: username,
		IsBot:    true,
		CardType: cardType,
	}
	if mutate != nil {
		mutate(&b)
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func makeActiveChallenge(t *testing.T, db *gorm.DB, userID, botID string, target float64, start, due time.Time) *models.Challenge {
	t.Helper()
	ch := models.Challenge{
		ID:              uuid.NewString(),
		UserID:          userID,
		BotID:           botID,
		Type:            models.CardTypeDefi,
		Status:          models.ChallengeStatusActive,
		TargetDistanceM: target,
		StartDate:       dateOnly(start),
		DueDate:         dateOnly(due),
	}
	require.NoError(t, db.Create(&ch).Error)
	return &ch
}
