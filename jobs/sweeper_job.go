package jobs

import (
	"log"
	"time"

	"beauty-clinic-server/database"
	"beauty-clinic-server/middleware"
	"beauty-clinic-server/models"
	"beauty-clinic-server/services"
)

// SweeperJob keeps time-dependent records honest: sessions whose date has
// passed while still scheduled become missed, discount codes past their
// window get deactivated, and stale refresh tokens are purged.
type SweeperJob struct {
	stopChan chan bool
}

// NewSweeperJob creates a new sweeper job
func NewSweeperJob() *SweeperJob {
	return &SweeperJob{
		stopChan: make(chan bool),
	}
}

// Start begins the sweeper job
func (j *SweeperJob) Start() {
	go j.run()
	log.Println("🚀 Sweeper job started")
}

// Stop stops the sweeper job
func (j *SweeperJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Sweeper job stopped")
}

func (j *SweeperJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()

	// One pass on startup so restarts don't delay the sweep
	j.SweepMissedSessions(time.Now())
	j.SweepExpiredDiscounts(time.Now())

	for {
		select {
		case <-ticker.C:
			j.SweepMissedSessions(time.Now())
			j.SweepExpiredDiscounts(time.Now())
			middleware.CleanupRateLimiters()
		case <-cleanup.C:
			j.cleanupRefreshTokens()
		case <-j.stopChan:
			return
		}
	}
}

// SweepMissedSessions marks still-scheduled sessions whose date is in the
// past as missed. The plan's completed count is untouched.
func (j *SweeperJob) SweepMissedSessions(now time.Time) {
	cutoff := now.Truncate(24 * time.Hour)

	result := database.DB.Model(&models.TreatmentSession{}).
		Where("status = ? AND date < ?", models.SessionStatusScheduled, cutoff).
		Update("status", models.SessionStatusMissed)
	if result.Error != nil {
		log.Printf("❌ Missed-session sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Marked %d sessions as missed", result.RowsAffected)
	}
}

// SweepExpiredDiscounts deactivates codes whose validity window has closed
func (j *SweeperJob) SweepExpiredDiscounts(now time.Time) {
	result := database.DB.Model(&models.DiscountCode{}).
		Where("is_active = ? AND valid_to < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("❌ Discount sweep failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("⏰ Deactivated %d expired discount codes", result.RowsAffected)
	}
}

func (j *SweeperJob) cleanupRefreshTokens() {
	if err := services.NewJWTService().CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
