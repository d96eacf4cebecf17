// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/anonm/ticketbot/internal/domain"
)

// Repository defines the interface for persisting search history.
// Session state itself is deliberately not persisted; only the audit
// trail of searches survives a restart.
type Repository interface {
	// RecordSearch appends one search to the history log.
	RecordSearch(ctx context.Context, rec *domain.SearchRecord) error

	// RecentSearches returns up to limit searches for a chat, newest first.
	RecentSearches(ctx context.Context, chatID int64, limit int) ([]*domain.SearchRecord, error)

	// PruneSearches removes history entries older than maxAge and
	// returns the number deleted.
	PruneSearches(ctx context.Context, maxAge time.Duration) (int64, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
