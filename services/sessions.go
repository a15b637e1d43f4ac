// services/sessions.go
package services

import (
	"fmt"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService owns human session writes. Creating a session
// synchronously runs the completion detector and the objet-card grant
// evaluator so the reward side effects land in the same response.
type SessionService struct {
	DB         *gorm.DB
	Completion *CompletionService
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{
		DB:         db,
		Completion: NewCompletionService(db),
	}
}

// CreateSession persists an already-validated session and evaluates
// rewards. Validation of the input tuple is the handler's contract.
func (s *SessionService) CreateSession(userID string, date time.Time, distanceM float64, typ models.SessionType) (*models.Session, *CompletionResult, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      dateOnly(date),
		DistanceM: distanceM,
		Type:      typ,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	result, err := s.Completion.HandleSessionRecorded(&session, time.Now())
	if err != nil {
		return nil, nil, err
	}
	return &session, result, nil
}

// ListSessions returns the user's sessions, newest first.
func (s *SessionService) ListSessions(userID string, limit int) ([]models.Session, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var sessions []models.Session
	err := s.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
