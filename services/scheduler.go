// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartDailyScheduler runs the assignment batch on a cron schedule
// (operator-configurable, defaults to early morning). The standalone
// cmd/assignbatch binary covers deployments that prefer an external
// scheduler instead.
func (s *AssignmentService) StartDailyScheduler(crontab string) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, err := sched.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() {
			if err := s.RunDaily(time.Now()); err != nil {
				log.Printf("[Scheduler] ❌ Daily assignment run failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] ❌ Failed to schedule daily assignment (%q): %v", crontab, err)
		return
	}
	log.Printf("[Scheduler] 🗓️ Daily assignment scheduled: %q", crontab)
}
