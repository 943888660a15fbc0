package worker

import (
	"context"
	"log/slog"
	"time"

	"orderdash/internal/ledger"
)

// RefreshWorker reloads the ledger cache on a fixed interval so the dashboard
// keeps tracking the sheet export without restarts. A failed reload is logged
// and the cache keeps its last good snapshot.
type RefreshWorker struct {
	cache    *ledger.Cache
	interval time.Duration
}

func NewRefreshWorker(cache *ledger.Cache, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{cache: cache, interval: interval}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	slog.Info("starting ledger refresh worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ledger refresh worker stopped")
			return
		case <-ticker.C:
			if err := w.cache.Refresh(); err != nil {
				slog.Error("ledger refresh failed", "error", err)
			} else {
				slog.Info("ledger refreshed")
			}
		}
	}
}
