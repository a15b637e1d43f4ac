// services/pools.go
package services

import (
	"time"

	"fitness-challenge-system/models"

	"gorm.io/gorm"
)

// dateOnly truncates a timestamp to its calendar day in UTC. All
// start/due/event date comparisons go through this.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

// BatchContext is the run-scoped shared state of one daily assignment
// batch: today's date, the resolved season, the single event bot for
// the day, the challenge pool, and the set of bots already used as an
// opponent today. Pools are immutable after construction; only the
// used set grows as the per-user loop consumes bots.
type BatchContext struct {
	Today  time.Time
	Season *models.Season

	// Daily event, shared by every user in the run. Nil when the event
	// pool was empty or the draw came up with nothing.
	EventBot    *models.User
	EventTarget float64

	eventPool     []models.User
	challengePool []models.User
	usedToday     map[string]bool
}

// AvailableChallengeBots is the challenge pool minus bots already used
// as an opponent today — each non-event bot faces at most one user per
// calendar day.
func (b *BatchContext) AvailableChallengeBots() []models.User {
	avail := make([]models.User, 0, len(b.challengePool))
	for _, bot := range b.challengePool {
		if !b.usedToday[bot.ID] {
			avail = append(avail, bot)
		}
	}
	return avail
}

// MarkUsed consumes a bot for the rest of the run. Event picks never
// go through here — the daily event is shared, not exclusive.
func (b *BatchContext) MarkUsed(botID string) {
	b.usedToday[botID] = true
}

// seasonEligible applies the season-affinity filter common to every
// pool: unset affinity always passes; otherwise the affinity must be ≤
// the resolved season, and with no season resolved only affinity-free
// bots participate.
func seasonEligible(bot *models.User, season *models.Season) bool {
	if bot.SeasonAffinity == nil {
		return true
	}
	if season == nil {
		return false
	}
	return *bot.SeasonAffinity <= season.Number
}

// BuildBatchContext resolves the season, partitions the bot roster
// into the event and challenge pools for the day, and loads the
// cross-user exclusivity set from challenges already created today.
func BuildBatchContext(db *gorm.DB, now time.Time) (*BatchContext, error) {
	today := dateOnly(now)

	season, err := ResolveSeason(db, today)
	if err != nil {
		return nil, err
	}

	var bots []models.User
	if err := db.Where("is_bot = ?", true).Find(&bots).Error; err != nil {
		return nil, err
	}

	bctx := &BatchContext{
		Today:     today,
		Season:    season,
		usedToday: make(map[string]bool),
	}

	for _, bot := range bots {
		if !seasonEligible(&bot, season) {
			continue
		}
		switch bot.CardType {
		case models.CardTypeEvenement:
			if bot.EventDate != nil && sameDay(*bot.EventDate, today) &&
				bot.TargetDistanceM != nil && *bot.TargetDistanceM > 0 {
				bctx.eventPool = append(bctx.eventPool, bot)
			}
		case models.CardTypeDefi, models.CardTypeRare:
			if bot.AvgDistanceM != nil && *bot.AvgDistanceM > 0 {
				bctx.challengePool = append(bctx.challengePool, bot)
			}
		}
	}

	// Bots already holding the opponent side of a non-event challenge
	// created today are off the table for the rest of the day.
	var usedIDs []string
	if err := db.Model(&models.Challenge{}).
		Where("start_date >= ? AND type <> ?", today, models.CardTypeEvenement).
		Pluck("bot_id", &usedIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range usedIDs {
		bctx.usedToday[id] = true
	}

	return bctx, nil
}
