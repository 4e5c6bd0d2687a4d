package employees

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps employees in process memory. Tests and broker-less
// development environments use it in place of Mongo.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Employee
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int64]Employee)}
}

func (s *MemoryStore) Create(ctx context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if existing.Email == e.Email {
			return ErrDuplicateEmail
		}
	}

	s.nextID++
	e.ID = s.nextID
	s.byID[e.ID] = *e
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id int64) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemoryStore) Update(ctx context.Context, e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[e.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.byID {
		if id != e.ID && existing.Email == e.Email {
			return ErrDuplicateEmail
		}
	}
	s.byID[e.ID] = *e
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.byID))
	for _, e := range s.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}
