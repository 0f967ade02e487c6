package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/weather"
)

var (
	// ErrNotFound is returned when no run has published a display yet.
	ErrNotFound = errors.New("no forecast display available")
	// ErrStaleRun is returned when a newer run has already published.
	ErrStaleRun = errors.New("stale run")
)

// MemoryStore is a concurrency-safe holder of the most recent display.
// Nothing is kept beyond the latest published run.
type MemoryStore struct {
	mu sync.RWMutex

	nextSeq   uint64
	published uint64 // seq of the current display; 0 = none
	latest    weather.Display
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Begin hands out a ticket for a new run.
func (s *MemoryStore) Begin() weather.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	return weather.Ticket{Seq: s.nextSeq, ID: uuid.NewString()}
}

// Publish replaces the current display unless a run started later has
// already published.
func (s *MemoryStore) Publish(t weather.Ticket, d weather.Display) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Seq == 0 || t.Seq > s.nextSeq {
		return fmt.Errorf("unknown ticket %d", t.Seq)
	}
	if t.Seq < s.published {
		return fmt.Errorf("%w: run %d superseded by run %d", ErrStaleRun, t.Seq, s.published)
	}

	s.published = t.Seq
	s.latest = d
	return nil
}

// Latest returns the most recently published display.
func (s *MemoryStore) Latest() (weather.Display, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.published == 0 {
		return weather.Display{}, ErrNotFound
	}
	return s.latest, nil
}

var _ weather.Store = (*MemoryStore)(nil)
