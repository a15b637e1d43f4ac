// workers/expiry_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"fitness-challenge-system/models"
	"fitness-challenge-system/services"

	"gorm.io/gorm"
)

// ChallengeExpiryWorker periodically sweeps overdue active challenges
// to expired. The daily batch already expires lazily per user; this
// sweep just keeps the read APIs honest between batch runs. Same rule
// either way: due_date strictly before today.
type ChallengeExpiryWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewChallengeExpiryWorker(db *gorm.DB, interval time.Duration) *ChallengeExpiryWorker {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &ChallengeExpiryWorker{db: db, interval: interval}
}

func (w *ChallengeExpiryWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Challenge Expiry Worker…")
	go w.run(ctx)
}

func (w *ChallengeExpiryWorker) run(ctx context.Context) {
	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep()
		case <-ctx.Done():
			log.Println("⏹️ Challenge Expiry Worker stopped")
			return
		}
	}
}

func (w *ChallengeExpiryWorker) sweep() {
	w.sweepAt(time.Now())
}

// sweepAt expires every overdue active challenge, one guarded status
// transition per row — the same validated edge the batch and the
// completion detector use.
func (w *ChallengeExpiryWorker) sweepAt(now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var overdue []models.Challenge
	if err := w.db.Where("status = ? AND due_date < ?", models.ChallengeStatusActive, today).
		Find(&overdue).Error; err != nil {
		log.Printf("❌ [EXPIRY] Sweep query failed: %v", err)
		return
	}

	expired := 0
	for _, ch := range overdue {
		moved, err := services.TransitionChallenge(w.db, ch.ID, models.ChallengeStatusActive, models.ChallengeStatusExpired, nil)
		if err != nil {
			log.Printf("❌ [EXPIRY] Failed to expire challenge %s: %v", ch.ID, err)
			continue
		}
		if moved {
			expired++
		}
	}
	if expired > 0 {
		log.Printf("⌛ [EXPIRY] Expired %d overdue challenge(s)", expired)
	}
}
