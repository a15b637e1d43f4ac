// services/completion.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionResult tells the session-creation caller what the new
// session earned, so the response can carry it.
type CompletionResult struct {
	Completed   bool                `json:"completed"`
	Challenge   *models.Challenge   `json:"challenge,omitempty"`
	Bot         *models.User        `json:"bot,omitempty"`
	ObjectCards []models.CardResult `json:"object_cards,omitempty"`
}

// CompletionService runs synchronously inside the session-creation
// request: it checks the user's active challenge against the new
// session and independently evaluates passive object-card grants.
type CompletionService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{
		DB:            db,
		Notifications: NewNotificationService(db),
	}
}

// HandleSessionRecorded is invoked with an already-validated session
// that was just persisted. Input validation (date format, positive
// distance) is the caller's contract.
func (s *CompletionService) HandleSessionRecorded(session *models.Session, now time.Time) (*CompletionResult, error) {
	result := &CompletionResult{}

	if err := s.detectCompletion(session, now, result); err != nil {
		return nil, err
	}
	if err := s.grantObjectCards(session, result); err != nil {
		return nil, err
	}
	return result, nil
}

// detectCompletion transitions the user's active challenge to completed
// when the session falls inside the challenge window and covers the
// target. The status flip is a conditional update — if a concurrent
// session write got there first, zero rows are affected and this one
// quietly steps aside.
func (s *CompletionService) detectCompletion(session *models.Session, now time.Time, result *CompletionResult) error {
	var ch models.Challenge
	err := s.DB.Where("user_id = ? AND status = ?", session.UserID, models.ChallengeStatusActive).
		Order("created_at DESC").
		First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load active challenge: %w", err)
	}

	day := dateOnly(session.Date)
	if day.Before(dateOnly(ch.StartDate)) || day.After(dateOnly(ch.DueDate)) {
		return nil
	}
	if session.DistanceM < ch.TargetDistanceM {
		return nil
	}

	moved, err := TransitionChallenge(s.DB, ch.ID, models.ChallengeStatusActive, models.ChallengeStatusCompleted, map[string]interface{}{
		"completed_at":         now,
		"completed_session_id": session.ID,
	})
	if err != nil {
		return err
	}
	if !moved {
		// A concurrent qualifying session already completed it.
		log.Printf("⚔️ Challenge %s already completed by a concurrent session, skipping", ch.ID)
		return nil
	}

	ch.Status = models.ChallengeStatusCompleted
	ch.CompletedAt = &now
	ch.CompletedSessionID = &session.ID

	var bot models.User
	if err := s.DB.First(&bot, "id = ?", ch.BotID).Error; err != nil {
		return fmt.Errorf("failed to load challenge bot: %w", err)
	}

	card := models.CardResult{
		ID:                uuid.NewString(),
		UserID:            session.UserID,
		BotID:             ch.BotID,
		Type:              ch.Type,
		SessionID:         session.ID,
		AchievedDistanceM: session.DistanceM,
		TargetDistanceM:   ch.TargetDistanceM,
		AchievedAt:        dateOnly(session.Date),
	}
	if err := s.DB.Create(&card).Error; err != nil {
		return fmt.Errorf("failed to append card result: %w", err)
	}

	if err := s.Notifications.NotifyCompletion(&ch, &bot, session.DistanceM); err != nil {
		return err
	}
	if err := s.Notifications.MarkAssignmentsRead(session.UserID, now); err != nil {
		return err
	}

	log.Printf("🏆 User %s completed %s challenge %s (%.0f m ≥ %.0f m)",
		session.UserID, ch.Type, ch.ID, session.DistanceM, ch.TargetDistanceM)

	result.Completed = true
	result.Challenge = &ch
	result.Bot = &bot
	return nil
}

// grantObjectCards hands out one card per objet bot whose threshold the
// session crossed. Deliberately not deduplicated: crossing the same
// threshold on a later session earns the card again.
func (s *CompletionService) grantObjectCards(session *models.Session, result *CompletionResult) error {
	var bots []models.User
	if err := s.DB.Where("is_bot = ? AND card_type = ?", true, models.CardTypeObjet).Find(&bots).Error; err != nil {
		return fmt.Errorf("failed to load objet bots: %w", err)
	}

	for _, bot := range bots {
		if bot.TargetDistanceM == nil || *bot.TargetDistanceM <= 0 || *bot.TargetDistanceM > session.DistanceM {
			continue
		}
		card := models.CardResult{
			ID:                uuid.NewString(),
			UserID:            session.UserID,
			BotID:             bot.ID,
			Type:              models.CardTypeObjet,
			SessionID:         session.ID,
			AchievedDistanceM: session.DistanceM,
			TargetDistanceM:   *bot.TargetDistanceM,
			AchievedAt:        dateOnly(session.Date),
		}
		if err := s.DB.Create(&card).Error; err != nil {
			return fmt.Errorf("failed to append objet card result: %w", err)
		}
		log.Printf("🎴 Objet card granted: %s → user %s (%.0f m ≥ %.0f m)",
			bot.Username, session.UserID, session.DistanceM, *bot.TargetDistanceM)
		result.ObjectCards = append(result.ObjectCards, card)
	}
	return nil
}
