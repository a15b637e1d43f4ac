// services/assignment.go
package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// challengeDurationDays is how long a non-event challenge stays open.
const challengeDurationDays = 3

// AssignmentService runs the daily challenge/event assignment batch:
// lazy expiry, event override, weighted opponent draw, target
// computation, persistence, notifications and synthetic bot sessions.
type AssignmentService struct {
	DB            *gorm.DB
	Rng           *rand.Rand
	Notifications *NotificationService
}

// NewAssignmentService wires the batch engine. Pass a seeded rng for
// deterministic draws; nil falls back to a time-seeded source.
func NewAssignmentService(db *gorm.DB, rng *rand.Rand) *AssignmentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AssignmentService{
		DB:            db,
		Rng:           rng,
		Notifications: NewNotificationService(db),
	}
}

// RunDaily executes one full assignment batch: build the run context,
// pick the daily event bot once, then walk every human user in turn.
// Users are processed sequentially; a datastore error aborts the rest
// of the run (a rerun is safe — still-valid assignments are skipped
// and the bot session writer is idempotent).
func (s *AssignmentService) RunDaily(now time.Time) error {
	bctx, err := BuildBatchContext(s.DB, now)
	if err != nil {
		return fmt.Errorf("failed to build batch context: %w", err)
	}

	s.pickDailyEventBot(bctx)

	var humans []models.User
	if err := s.DB.Where("is_bot = ?", false).Order("created_at ASC").Find(&humans).Error; err != nil {
		return fmt.Errorf("failed to load user roster: %w", err)
	}

	log.Printf("[BATCH] 🏁 Daily assignment run for %s: %d users, season=%v, event_bot=%v",
		bctx.Today.Format("2006-01-02"), len(humans), seasonLabel(bctx.Season), eventLabel(bctx.EventBot))

	for i := range humans {
		if err := s.AssignForUser(bctx, &humans[i], now); err != nil {
			return fmt.Errorf("assignment failed for user %s: %w", humans[i].ID, err)
		}
	}

	log.Printf("[BATCH] ✅ Daily assignment run finished (%d users)", len(humans))
	return nil
}

// pickDailyEventBot draws the single event bot shared by every user in
// the run. Drawn once, by drop rate alone; an empty pool or zero total
// weight simply means no event today.
func (s *AssignmentService) pickDailyEventBot(bctx *BatchContext) {
	pool := bctx.eventPool
	idx := PickWeighted(s.Rng, len(pool), func(i int) float64 {
		return EventWeight(&pool[i])
	})
	if idx < 0 {
		return
	}

	bot := pool[idx]
	target, err := NormalizeDistance(*bot.TargetDistanceM)
	if err != nil {
		// Pool construction already required a positive target, so this
		// only fires on corrupt data.
		log.Printf("[BATCH] ⚠️ Event bot %s has unusable target distance, no event today: %v", bot.ID, err)
		return
	}

	bctx.EventBot = &bot
	bctx.EventTarget = target
	log.Printf("[BATCH] 🎪 Daily event bot: %s (target %.0f m)", bot.Username, target)
}

// AssignForUser is the per-user lifecycle step. Order matters: lazy
// expiry first, then the event override, then the skip-if-active rule,
// then a fresh assignment.
func (s *AssignmentService) AssignForUser(bctx *BatchContext, user *models.User, now time.Time) error {
	latest, err := s.latestChallenge(user.ID)
	if err != nil {
		return err
	}

	if latest != nil && latest.Status == models.ChallengeStatusActive {
		stillValid := !dateOnly(latest.DueDate).Before(bctx.Today)

		switch {
		case !stillValid:
			// Lazy expiry: overdue actives die on the next batch pass.
			if _, err := TransitionChallenge(s.DB, latest.ID, models.ChallengeStatusActive, models.ChallengeStatusExpired, nil); err != nil {
				return err
			}
			log.Printf("[BATCH] ⌛ Expired overdue challenge %s (user %s)", latest.ID, user.ID)

		case bctx.EventBot != nil:
			// Today's event already assigned means a rerun has nothing
			// to do — overriding it would re-create it and double the
			// start notification.
			if latest.IsEvent() && latest.BotID == bctx.EventBot.ID && sameDay(latest.StartDate, bctx.Today) {
				return nil
			}
			// The daily event interrupts whatever else is in progress.
			if _, err := TransitionChallenge(s.DB, latest.ID, models.ChallengeStatusActive, models.ChallengeStatusExpired, nil); err != nil {
				return err
			}
			log.Printf("[BATCH] 🎪 Event override: expired challenge %s (user %s)", latest.ID, user.ID)

		default:
			// Still running and nothing outranks it — nothing to do today.
			return nil
		}
	}

	if bctx.EventBot != nil {
		return s.assignEvent(bctx, user, now)
	}
	return s.assignChallenge(bctx, user, now)
}

func (s *AssignmentService) assignEvent(bctx *BatchContext, user *models.User, now time.Time) error {
	ch := models.Challenge{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		BotID:           bctx.EventBot.ID,
		Type:            models.CardTypeEvenement,
		Status:          models.ChallengeStatusActive,
		TargetDistanceM: bctx.EventTarget,
		StartDate:       bctx.Today,
		DueDate:         bctx.Today,
		DueAt:           &now,
	}
	return s.persistAssignment(bctx, &ch, bctx.EventBot)
}

func (s *AssignmentService) assignChallenge(bctx *BatchContext, user *models.User, now time.Time) error {
	avail := bctx.AvailableChallengeBots()
	idx := PickWeighted(s.Rng, len(avail), func(i int) float64 {
		return ChallengeWeight(&avail[i], bctx.Season)
	})
	if idx < 0 {
		// Empty pool or zero total weight: no challenge today, not an error.
		log.Printf("[BATCH] 💤 No challenge bot available for user %s", user.ID)
		return nil
	}
	bot := avail[idx]

	base := bot.TargetDistanceM
	if base == nil {
		base = bot.AvgDistanceM
	}
	normalized, err := NormalizeDistance(*base)
	if err != nil {
		log.Printf("[BATCH] ⚠️ Skipping user %s: bot %s base distance invalid: %v", user.ID, bot.ID, err)
		return nil
	}
	target, err := JitterDistance(s.Rng, normalized, DefaultJitterRatio)
	if err != nil {
		log.Printf("[BATCH] ⚠️ Skipping user %s: jitter failed for bot %s: %v", user.ID, bot.ID, err)
		return nil
	}

	// Consume the bot for the rest of the run — one opponent slot per
	// non-event bot per day.
	bctx.MarkUsed(bot.ID)

	dueAt := now.AddDate(0, 0, challengeDurationDays)
	ch := models.Challenge{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		BotID:           bot.ID,
		Type:            bot.CardType,
		Status:          models.ChallengeStatusActive,
		TargetDistanceM: target,
		StartDate:       bctx.Today,
		DueDate:         bctx.Today.AddDate(0, 0, challengeDurationDays),
		DueAt:           &dueAt,
	}
	return s.persistAssignment(bctx, &ch, &bot)
}

func (s *AssignmentService) persistAssignment(bctx *BatchContext, ch *models.Challenge, bot *models.User) error {
	if err := s.DB.Create(ch).Error; err != nil {
		return fmt.Errorf("failed to persist challenge: %w", err)
	}
	if err := s.Notifications.NotifyAssignment(ch, bot); err != nil {
		return err
	}
	if err := EnsureBotSession(s.DB, bot.ID, bctx.Today, ch.TargetDistanceM); err != nil {
		return err
	}
	log.Printf("[BATCH] 🏅 Assigned %s challenge to user %s vs %s (target %.0f m, due %s)",
		ch.Type, ch.UserID, bot.Username, ch.TargetDistanceM, ch.DueDate.Format("2006-01-02"))
	return nil
}

// latestChallenge fetches the user's most recent challenge, any status.
func (s *AssignmentService) latestChallenge(userID string) (*models.Challenge, error) {
	var ch models.Challenge
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest challenge: %w", err)
	}
	return &ch, nil
}

func seasonLabel(s *models.Season) string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("%d", s.Number)
}

func eventLabel(bot *models.User) string {
	if bot == nil {
		return "none"
	}
	return bot.Username
}
