package screens

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store keeps per-screen state in memory, keyed by a random screen ID.
// Entries idle for longer than the TTL are dropped, which is how a screen
// "unmounts".
type Store[T any] struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a new screen store
func NewStore[T any](ttl time.Duration) *Store[T] {
	if ttl == 0 {
		ttl = 30 * time.Minute // default
	}
	return &Store[T]{
		entries: make(map[uuid.UUID]*entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create stores value under a fresh screen ID
func (s *Store[T]) Create(value T) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.entries[id] = &entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Get retrieves the screen state and refreshes its TTL
func (s *Store[T]) Get(id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.entries[id]
	if !ok {
		return zero, false
	}

	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.entries, id)
		return zero, false
	}

	// Refresh TTL on access
	e.expiresAt = now.Add(s.ttl)
	return e.value, true
}

// Delete removes a screen
func (s *Store[T]) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
}

// Len returns the number of live screens
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Sweep drops every expired screen and returns how many were removed
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Logger is the subset of *log.Logger the sweeper reports through
type Logger interface {
	Printf(format string, v ...any)
}

// RunSweeper sweeps expired screens every interval until ctx is done
func (s *Store[T]) RunSweeper(ctx context.Context, logger Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Printf("Expired %d idle screens", n)
			}
		}
	}
}
