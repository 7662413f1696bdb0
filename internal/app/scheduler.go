package app

import (
	"context"
	"time"
)

// syncInterval is how often connected portfolios are refreshed from the
// brokerage provider. Snapshots are periodic, not real-time.
const syncInterval = 30 * time.Minute

// StartSyncScheduler begins periodic background re-sync of every publicly
// shared connection, so the leaderboard does not rely on owners visiting
// their own dashboards. Cancelled via App.Close.
func (a *App) StartSyncScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel

	go func() {
		ticker := time.NewTicker(syncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				a.Logger.Debug().Msg("Sync scheduler stopped")
				return
			case <-ticker.C:
				a.syncPublicPortfolios(ctx)
			}
		}
	}()

	a.Logger.Info().Dur("interval", syncInterval).Msg("Sync scheduler started")
}

// syncPublicPortfolios refreshes each public connection in turn. One failed
// sync degrades that user's freshness only; the loop always continues.
func (a *App) syncPublicPortfolios(ctx context.Context) {
	snapshots, err := a.Storage.PortfolioStore().ListPublicSnapshots(ctx)
	if err != nil {
		a.Logger.Error().Err(err).Msg("Scheduled sync: listing public snapshots failed")
		return
	}

	for _, snapshot := range snapshots {
		if ctx.Err() != nil {
			return
		}
		if _, err := a.PortfolioService.Sync(ctx, snapshot.UserID); err != nil {
			a.Logger.Warn().
				Str("user_id", snapshot.UserID).
				Err(err).
				Msg("Scheduled sync failed for user")
		}
	}
}
