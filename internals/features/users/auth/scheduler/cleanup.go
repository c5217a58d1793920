package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authRepo "smartvisit_backend/internals/features/users/auth/repository"
)

// StartAuthCleanupScheduler prunes expired blacklist entries and stale
// refresh tokens once a day at 03:00.
func StartAuthCleanupScheduler(c *cron.Cron, db *gorm.DB) {
	_, err := c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP] Pruning token_blacklist and refresh_tokens...")

		if n, err := authRepo.CleanupExpiredBlacklist(db); err != nil {
			log.Printf("[CLEANUP ERROR] blacklist prune failed: %v", err)
		} else {
			log.Printf("[CLEANUP] %d blacklisted tokens removed", n)
		}

		if n, err := authRepo.CleanupExpiredRefreshTokens(db); err != nil {
			log.Printf("[CLEANUP ERROR] refresh token prune failed: %v", err)
		} else {
			log.Printf("[CLEANUP] %d refresh tokens removed", n)
		}
	})
	if err != nil {
		log.Printf("[ERROR] failed to register auth cleanup job: %v", err)
	}
}
