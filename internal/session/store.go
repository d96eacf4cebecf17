// Package session provides the in-memory per-chat session store.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/anonm/ticketbot/internal/domain"
)

// Store manages live sessions keyed by chat ID. Sessions are created
// lazily on first inbound event and live in memory only; losing them on
// restart is acceptable.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*domain.Session),
	}
}

// Get returns the session for a chat, or nil if none exists.
func (st *Store) Get(chatID int64) *domain.Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[chatID]
}

// GetOrCreate returns the session for a chat, creating it on first use.
func (st *Store) GetOrCreate(chatID int64) *domain.Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[chatID]; ok {
		return s
	}

	s := &domain.Session{
		ChatID:     chatID,
		Activation: domain.ActivationUnknown,
		LastSeenAt: time.Now(),
	}
	st.sessions[chatID] = s
	slog.Info("Session created", "chat_id", chatID)
	return s
}

// Delete removes the session for a chat.
func (st *Store) Delete(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// expired returns the chat IDs of sessions idle longer than ttl.
func (st *Store) expired(ttl time.Duration) []int64 {
	st.mu.RLock()
	defer st.mu.RUnlock()

	cutoff := time.Now().Add(-ttl)
	var ids []int64
	for id, s := range st.sessions {
		s.Lock()
		idle := s.LastSeenAt.Before(cutoff)
		s.Unlock()
		if idle {
			ids = append(ids, id)
		}
	}
	return ids
}
