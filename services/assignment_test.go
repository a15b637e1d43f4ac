package services

import (
	"math/rand"
	"testing"
	"time"

	"fitness-challenge-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var batchNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestRunDaily_AssignsChallengeWithJitteredTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(42)))

	user := makeHuman(t, db, "alice")
	bot := makeBot(t, db, "marathon-marcel", models.CardTypeDefi, func(b *models.User) {
		b.AvgDistanceM = f64(10000)
		b.DropRate = f64(2)
	})

	require.NoError(t, svc.RunDaily(batchNow))

	var ch models.Challenge
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&ch).Error)
	assert.Equal(t, models.ChallengeStatusActive, ch.Status)
	assert.Equal(t, models.CardTypeDefi, ch.Type)
	assert.Equal(t, bot.ID, ch.BotID)
	assert.GreaterOrEqual(t, ch.TargetDistanceM, 8500.0)
	assert.LessOrEqual(t, ch.TargetDistanceM, 11500.0)

	today := dateOnly(batchNow)
	assert.True(t, dateOnly(ch.StartDate).Equal(today))
	assert.True(t, dateOnly(ch.DueDate).Equal(today.AddDate(0, 0, 3)))

	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationChallengeStart, notifs[0].Type)

	// The opposing bot now shows a matching session for the day.
	var botSessions []models.Session
	require.NoError(t, db.Where("user_id = ?", bot.ID).Find(&botSessions).Error)
	require.Len(t, botSessions, 1)
	assert.Equal(t, ch.TargetDistanceM, botSessions[0].DistanceM)
}

func TestRunDaily_RerunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(42)))

	user := makeHuman(t, db, "alice")
	bot := makeBot(t, db, "marcel", models.CardTypeDefi, func(b *models.User) {
		b.AvgDistanceM = f64(10000)
	})

	require.NoError(t, svc.RunDaily(batchNow))
	require.NoError(t, svc.RunDaily(batchNow))

	var count int64
	require.NoError(t, db.Model(&models.Challenge{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "rerun must not double-assign")

	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", bot.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "rerun must not duplicate the bot session")
}

func TestRunDaily_ExpiresOverdueThenAssignsFresh(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(7)))

	user := makeHuman(t, db, "alice")
	makeBot(t, db, "marcel", models.CardTypeDefi, func(b *models.User) {
		b.AvgDistanceM = f64(10000)
	})

	yesterday := dateOnly(batchNow).AddDate(0, 0, -1)
	stale := makeActiveChallenge(t, db, user.ID, "some-old-bot", 8000, yesterday.AddDate(0, 0, -2), yesterday)

	require.NoError(t, svc.RunDaily(batchNow))

	var old models.Challenge
	require.NoError(t, db.First(&old, "id = ?", stale.ID).Error)
	assert.Equal(t, models.ChallengeStatusExpired, old.Status)

	var fresh models.Challenge
	require.NoError(t, db.Where("user_id = ? AND status = ?", user.ID, models.ChallengeStatusActive).First(&fresh).Error)
	assert.True(t, dateOnly(fresh.StartDate).Equal(dateOnly(batchNow)))
}

func TestRunDaily_SkipsUserWithValidActiveChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(7)))

	user := makeHuman(t, db, "alice")
	makeBot(t, db, "marcel", models.CardTypeDefi, func(b *models.User) {
		b.AvgDistanceM = f64(10000)
	})

	tomorrow := dateOnly(batchNow).AddDate(0, 0, 1)
	held := makeActiveChallenge(t, db, user.ID, "held-bot", 8000, dateOnly(batchNow), tomorrow)

	require.NoError(t, svc.RunDaily(batchNow))

	var challenges []models.Challenge
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&challenges).Error)
	require.Len(t, challenges, 1)
	assert.Equal(t, held.ID, challenges[0].ID)
	assert.Equal(t, models.ChallengeStatusActive, challenges[0].Status)
}

func TestRunDaily_EventOverridesActiveChallenge(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(7)))

	user := makeHuman(t, db, "alice")
	today := dateOnly(batchNow)
	eventBot := makeBot(t, db, "fete-du-sport", models.CardTypeEvenement, func(b *models.User) {
		b.EventDate = &today
		b.TargetDistanceM = f64(5) // kilometers; normalizes to 5000 m
	})

	tomorrow := today.AddDate(0, 0, 1)
	held := makeActiveChallenge(t, db, user.ID, "held-bot", 8000, today, tomorrow)

	require.NoError(t, svc.RunDaily(batchNow))

	var old models.Challenge
	require.NoError(t, db.First(&old, "id = ?", held.ID).Error)
	assert.Equal(t, models.ChallengeStatusExpired, old.Status, "the event interrupts a still-valid challenge")

	var ev models.Challenge
	require.NoError(t, db.Where("user_id = ? AND status = ?", user.ID, models.ChallengeStatusActive).First(&ev).Error)
	assert.Equal(t, models.CardTypeEvenement, ev.Type)
	assert.Equal(t, eventBot.ID, ev.BotID)
	assert.Equal(t, 5000.0, ev.TargetDistanceM, "event targets are exact, no jitter")
	assert.True(t, dateOnly(ev.StartDate).Equal(today))
	assert.True(t, dateOnly(ev.DueDate).Equal(today), "events are same-day")
	require.NotNil(t, ev.DueAt)

	var notif models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, models.NotificationEventStart).First(&notif).Error)
}

func TestRunDaily_EventDayRerunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(7)))

	user := makeHuman(t, db, "alice")
	today := dateOnly(batchNow)
	makeBot(t, db, "fete-du-sport", models.CardTypeEvenement, func(b *models.User) {
		b.EventDate = &today
		b.TargetDistanceM = f64(5)
	})

	require.NoError(t, svc.RunDaily(batchNow))
	require.NoError(t, svc.RunDaily(batchNow))

	var challenges []models.Challenge
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&challenges).Error)
	require.Len(t, challenges, 1, "a rerun must not expire and re-create today's event")
	assert.Equal(t, models.ChallengeStatusActive, challenges[0].Status)
	assert.Equal(t, models.CardTypeEvenement, challenges[0].Type)

	var notifCount int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, models.NotificationEventStart).
		Count(&notifCount).Error)
	assert.EqualValues(t, 1, notifCount, "a rerun must not duplicate the start notification")
}

func TestRunDaily_BotExclusivityAcrossUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(11)))

	makeHuman(t, db, "alice")
	makeHuman(t, db, "bob")
	makeBot(t, db, "bot-a", models.CardTypeDefi, func(b *models.User) { b.AvgDistanceM = f64(8000) })
	makeBot(t, db, "bot-b", models.CardTypeDefi, func(b *models.User) { b.AvgDistanceM = f64(12000) })

	require.NoError(t, svc.RunDaily(batchNow))

	var challenges []models.Challenge
	require.NoError(t, db.Find(&challenges).Error)
	require.Len(t, challenges, 2)
	assert.NotEqual(t, challenges[0].BotID, challenges[1].BotID,
		"no two users may face the same non-event bot on one day")
}

func TestRunDaily_SingleBotServesOnlyOneUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(11)))

	makeHuman(t, db, "alice")
	makeHuman(t, db, "bob")
	makeBot(t, db, "lone-bot", models.CardTypeDefi, func(b *models.User) { b.AvgDistanceM = f64(8000) })

	require.NoError(t, svc.RunDaily(batchNow))

	var count int64
	require.NoError(t, db.Model(&models.Challenge{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the second user falls through with no assignment")
}

func TestRunDaily_EmptyPoolsAssignNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(3)))

	makeHuman(t, db, "alice")
	// Objet bots never enter the assignment pools.
	makeBot(t, db, "trophy", models.CardTypeObjet, func(b *models.User) { b.TargetDistanceM = f64(3000) })
	// Season-affine bot with no season resolved is ineligible.
	makeBot(t, db, "seasonal", models.CardTypeDefi, func(b *models.User) {
		b.AvgDistanceM = f64(9000)
		b.SeasonAffinity = intp(1)
	})

	require.NoError(t, svc.RunDaily(batchNow))

	var count int64
	require.NoError(t, db.Model(&models.Challenge{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRunDaily_ActiveChallengeCountNeverExceedsOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssignmentService(db, rand.New(rand.NewSource(21)))

	user := makeHuman(t, db, "alice")
	makeBot(t, db, "bot-a", models.CardTypeDefi, func(b *models.User) { b.AvgDistanceM = f64(8000) })
	makeBot(t, db, "bot-b", models.CardTypeRare, func(b *models.User) { b.AvgDistanceM = f64(15000) })

	for day := 0; day < 5; day++ {
		require.NoError(t, svc.RunDaily(batchNow.AddDate(0, 0, day)))

		var active int64
		require.NoError(t, db.Model(&models.Challenge{}).
			Where("user_id = ? AND status = ?", user.ID, models.ChallengeStatusActive).
			Count(&active).Error)
		assert.LessOrEqual(t, active, int64(1), "day %d broke the single-active invariant", day)
	}
}
