package items

import (
	"context"
	"sync"
)

// MemStore keeps items in insertion order. Every lookup is a linear scan
// by id, which is fine for a catalogue of this size.
type MemStore struct {
	mu    sync.RWMutex
	items []Item
}

func NewMemStore(seed ...Item) *MemStore {
	s := &MemStore{items: make([]Item, 0, len(seed))}
	for _, it := range seed {
		s.items = append(s.items, it.clone())
	}
	return s
}

// NewSeededStore returns a MemStore holding SeedItems.
func NewSeededStore() *MemStore {
	return NewMemStore(SeedItems()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.clone())
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	return s.items[i].clone(), nil
}

// Create assigns max(existing ids)+1, so an id is never handed out while
// another item still holds it.
func (s *MemStore) Create(ctx context.Context, p Patch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := Item{ID: s.nextID()}
	p.ApplyTo(&it)
	s.items = append(s.items, it)
	return it.clone(), nil
}

func (s *MemStore) Update(ctx context.Context, id int, p Patch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	p.ApplyTo(&s.items[i])
	return s.items[i].clone(), nil
}

func (s *MemStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// callers hold s.mu
func (s *MemStore) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// callers hold s.mu
func (s *MemStore) nextID() int {
	maxID := 0
	for _, it := range s.items {
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	return maxID + 1
}
