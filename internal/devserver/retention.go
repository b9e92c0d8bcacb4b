package devserver

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartLogRetention prunes old log entries with interval
func StartLogRetention(
	ctx context.Context,
	store *Store,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				if removed := store.pruneLogs(cutoff); removed > 0 {
					log.Info("pruned old log entries", zap.Int("removed", removed))
				}
			}
		}
	}()
}
