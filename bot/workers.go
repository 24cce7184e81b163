package bot

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// StartSessionCleanupWorker drops idle sessions every interval until ctx is done.
// Returns a cleanup function to stop the worker early.
func (b *Bot) StartSessionCleanupWorker(ctx context.Context, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{})

	go func() {
		log.Info("Session cleanup worker started")
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Session cleanup worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Session cleanup worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				b.cleanupSessions(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// cleanupSessions expires idle sessions and forgets the rooms their users left behind
func (b *Bot) cleanupSessions(ctx context.Context) {
	expired := b.sessions.Cleanup()
	for _, userID := range expired {
		if err := b.predictionService.ClearUser(ctx, userID); err != nil {
			log.WithFields(log.Fields{
				"user_id": userID,
				"error":   err,
			}).Error("Failed to clear rooms of expired session")
		}
	}
	if len(expired) > 0 {
		log.WithFields(log.Fields{
			"expired_count": len(expired),
			"active_count":  b.sessions.Len(),
		}).Info("Expired idle sessions")
	}
}
