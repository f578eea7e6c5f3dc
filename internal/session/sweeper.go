package session

import (
	"context"
	"time"

	"bakery/internal/metrics"

	"go.uber.org/zap"
)

type expiredTokenDeleter interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartSweeper removes expired session tokens every interval until ctx is done.
func StartSweeper(
	ctx context.Context,
	tokens expiredTokenDeleter,
	interval time.Duration,
	ttl time.Duration,
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
				removed, err := tokens.DeleteCreatedBefore(ctx, time.Now().Add(-ttl))
				if err != nil {
					log.Error("failed to sweep expired sessions", zap.Error(err))
					continue
				}
				if removed > 0 {
					metrics.SessionsSwept.Add(float64(removed))
					log.Info("swept expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
