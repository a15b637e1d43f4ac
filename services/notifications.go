// services/notifications.go
package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// The card taxonomy (défi / objet / événement) is French, and so are
// the user-facing notification bodies. French locale also gives the
// decimal comma in distances ("10,500 km").
var frPrinter = message.NewPrinter(language.French)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// frenchDateLabel renders a calendar day the way the app displays due
// dates: "3 septembre 2026".
func frenchDateLabel(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) append(userID string, typ models.NotificationType, title, body string, metadata map[string]string) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode notification metadata: %w", err)
	}
	notif := models.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Body:     body,
		Metadata: string(raw),
	}
	if err := s.DB.Create(&notif).Error; err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	log.Printf("🔔 Notification %s → user %s: %s", typ, userID, title)
	return nil
}

// NotifyAssignment announces a freshly assigned challenge or event.
// Target distances are shown in kilometers to three decimals; plain
// challenges additionally carry a localized due-date label.
func (s *NotificationService) NotifyAssignment(ch *models.Challenge, bot *models.User) error {
	km := frPrinter.Sprintf("%.3f", ch.TargetDistanceM/1000)
	meta := map[string]string{
		"challenge_id": ch.ID,
		"bot_id":       bot.ID,
		"type":         string(ch.Type),
	}

	if ch.IsEvent() {
		body := fmt.Sprintf("%s lance un événement : %s km à boucler aujourd'hui !", bot.Username, km)
		return s.append(ch.UserID, models.NotificationEventStart, "Événement du jour !", body, meta)
	}

	body := fmt.Sprintf("%s te défie : %s km avant le %s !", bot.Username, km, frenchDateLabel(ch.DueDate))
	return s.append(ch.UserID, models.NotificationChallengeStart, "Nouveau défi !", body, meta)
}

// NotifyCompletion announces a beaten challenge or event, with achieved
// and target distances in kilometers to one decimal.
func (s *NotificationService) NotifyCompletion(ch *models.Challenge, bot *models.User, achievedM float64) error {
	achieved := frPrinter.Sprintf("%.1f", achievedM/1000)
	target := frPrinter.Sprintf("%.1f", ch.TargetDistanceM/1000)
	meta := map[string]string{
		"challenge_id": ch.ID,
		"bot_id":       bot.ID,
		"type":         string(ch.Type),
	}

	if ch.IsEvent() {
		body := fmt.Sprintf("Événement bouclé : %s km sur %s km. La carte de %s est à toi !", achieved, target, bot.Username)
		return s.append(ch.UserID, models.NotificationEventSuccess, "Événement réussi !", body, meta)
	}

	body := fmt.Sprintf("Défi relevé : %s km sur %s km. Tu remportes la carte de %s !", achieved, target, bot.Username)
	return s.append(ch.UserID, models.NotificationChallengeSuccess, "Défi relevé !", body, meta)
}

// MarkAssignmentsRead clears every unread start notification for the
// user — the nudge is stale once the goal is met.
func (s *NotificationService) MarkAssignmentsRead(userID string, now time.Time) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type IN ? AND read_at IS NULL", userID,
			[]models.NotificationType{models.NotificationChallengeStart, models.NotificationEventStart}).
		Update("read_at", now).Error
}

// MarkRead sets read_at on one of the user's notifications. Rows are
// never deleted.
func (s *NotificationService) MarkRead(userID, notificationID string, now time.Time) (bool, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
