package domain

import (
	"sync"
	"time"
)

// Activation is the cached outcome of the last entitlement check.
type Activation int

const (
	ActivationUnknown Activation = iota
	ActivationActive
	ActivationInactive
)

// Direction is a pagination move requested by the user.
type Direction int

const (
	DirectionPrev Direction = iota
	DirectionNext
)

// Session holds per-chat state: the cached activation outcome and the
// current pagination view. All mutable fields are guarded by the embedded
// mutex; handlers lock the session for the duration of an event so edits
// to the rendered message stay ordered per chat.
type Session struct {
	mu sync.Mutex

	ChatID     int64
	Activation Activation

	// Results is replaced wholesale by each successful search; Cursor
	// indexes into it and MessageID is the chat message currently
	// rendering Results[Cursor] (0 when nothing has been rendered).
	Results   []Event
	Cursor    int
	MessageID int

	LastSeenAt time.Time
}

// Lock acquires the per-session mutex.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity for TTL-based eviction.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// HasResults reports whether the session has an active result set.
func (s *Session) HasResults() bool {
	return len(s.Results) > 0
}

// SetResults replaces the result set and resets the pagination view.
// The previously rendered message, if any, is abandoned.
func (s *Session) SetResults(results []Event) {
	s.Results = results
	s.Cursor = 0
	s.MessageID = 0
}

// Current returns the event at the cursor. Callers must ensure the
// session has results.
func (s *Session) Current() Event {
	return s.Results[s.Cursor]
}

// Advance moves the cursor one step in the given direction, saturating
// at the ends of the result set. It reports whether the cursor moved.
func (s *Session) Advance(dir Direction) bool {
	switch dir {
	case DirectionPrev:
		if s.Cursor > 0 {
			s.Cursor--
			return true
		}
	case DirectionNext:
		if s.Cursor < len(s.Results)-1 {
			s.Cursor++
			return true
		}
	}
	return false
}
