package attendance

import (
	"context"
	"sync"
)

// MemoryStore keeps attendance records in process memory for tests and
// broker-less development environments.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	recs   []Record
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	s.recs = append(s.recs, *rec)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first.
	out := make([]Record, len(s.recs))
	for i, rec := range s.recs {
		out[len(s.recs)-1-i] = rec
	}
	return out, nil
}
