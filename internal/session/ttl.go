package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonm/ticketbot/internal/store"
)

const ttlWorkerInterval = 10 * time.Minute

// historyRetention is how long search-history rows are kept before the
// sweep deletes them.
const historyRetention = 30 * 24 * time.Hour

// CleanupCallback is called for each chat whose session is evicted.
type CleanupCallback func(chatID int64)

// StartTTLWorker runs a background goroutine that periodically evicts
// sessions idle past ttl, bounding memory under long uptime, and prunes
// old search history on the same cadence.
func StartTTLWorker(ctx context.Context, st *Store, repo store.Repository, ttl time.Duration, onEvict CleanupCallback) {
	ticker := time.NewTicker(ttlWorkerInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session TTL worker started", "interval", ttlWorkerInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				sweep(ctx, st, repo, ttl, onEvict)
			case <-ctx.Done():
				slog.Info("Session TTL worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweep(ctx context.Context, st *Store, repo store.Repository, ttl time.Duration, onEvict CleanupCallback) {
	ids := st.expired(ttl)
	for _, id := range ids {
		st.Delete(id)
		if onEvict != nil {
			onEvict(id)
		}
		slog.Info("Session evicted after idle TTL", "chat_id", id)
	}
	if len(ids) > 0 {
		slog.Info("Session TTL sweep completed", "evicted", len(ids))
	}

	if repo == nil {
		return
	}
	if pruned, err := repo.PruneSearches(ctx, historyRetention); err != nil {
		slog.Error("TTL worker failed to prune search history", "error", err)
	} else if pruned > 0 {
		slog.Info("TTL worker pruned old search history", "count", pruned)
	}
}
