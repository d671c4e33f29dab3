package storage

import (
	"sync"

	"voice-bot/internal/profile"
)

// MemoryStore implements Store in memory. State is lost on restart;
// it exists for tests and throwaway deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]*profile.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]*profile.Record),
	}
}

// Load returns the user's record, or a default record for unknown users.
func (s *MemoryStore) Load(userID int64) (*profile.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[userID]
	if !ok {
		return profile.NewRecord(), nil
	}
	// Copy across the boundary so callers cannot mutate stored state.
	return rec.Clone(), nil
}

// Save upserts the user's record.
func (s *MemoryStore) Save(userID int64, rec *profile.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = rec.Clone()
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
