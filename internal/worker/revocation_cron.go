package worker

// revocation_cron.go
// Background goroutine that evicts expired rows from the token blocklist.
// A revoked token past its own expiry is rejected by the JWT check anyway,
// so the row is pure dead weight once exp has passed.

import (
	"context"
	"time"

	"smartpos/internal/repository"

	"github.com/rs/zerolog/log"
)

const revocationTickInterval = 10 * time.Minute

// StartRevocationCron launches a background goroutine that periodically
// deletes expired blocklist entries. It respects the context for graceful
// shutdown.
func StartRevocationCron(ctx context.Context, repo repository.RevokedTokenRepository) {
	go func() {
		ticker := time.NewTicker(revocationTickInterval)
		defer ticker.Stop()

		log.Info().Msg("revocation_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("revocation_cron: shutting down")
				return
			case <-ticker.C:
				evictExpired(ctx, repo)
			}
		}
	}()
}

func evictExpired(ctx context.Context, repo repository.RevokedTokenRepository) {
	deleted, err := repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("revocation_cron: eviction failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("revocation_cron: expired tokens evicted")
	}
}
