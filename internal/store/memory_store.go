package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/cwrk-planet/activities/internal/domain"
)

type entry struct {
	mu       sync.Mutex
	activity domain.Activity
}

// MemoryStore keeps activities in process memory. The set of activities is
// fixed at construction; each roster has its own lock so check-and-modify is atomic.
type MemoryStore struct {
	order   []string
	entries map[string]*entry
}

var _ ActivityStore = (*MemoryStore)(nil)

// NewMemoryStore seeds a store. Names must be unique and non-empty and no
// roster may list an email twice.
func NewMemoryStore(seed []domain.Activity) (*MemoryStore, error) {
	s := &MemoryStore{
		order:   make([]string, 0, len(seed)),
		entries: make(map[string]*entry, len(seed)),
	}

	for _, a := range seed {
		if a.Name == "" {
			return nil, fmt.Errorf("seed: activity without a name")
		}
		if _, dup := s.entries[a.Name]; dup {
			return nil, fmt.Errorf("seed: duplicate activity %q", a.Name)
		}

		clean := a.Clone()
		clean.Participants = clean.Participants[:0]
		for _, p := range a.Participants {
			if err := clean.SignUp(p); err != nil {
				return nil, fmt.Errorf("seed: activity %q lists %q twice", a.Name, p)
			}
		}

		s.order = append(s.order, a.Name)
		s.entries[a.Name] = &entry{activity: clean}
	}

	return s, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(s.order))
	for _, name := range s.order {
		e := s.entries[name]
		e.mu.Lock()
		out = append(out, e.activity.Clone())
		e.mu.Unlock()
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, name string) (domain.Activity, error) {
	e, ok := s.entries[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.Clone(), nil
}

func (s *MemoryStore) AddParticipant(_ context.Context, name, email string) (domain.Activity, error) {
	return s.update(name, func(a *domain.Activity) error { return a.SignUp(email) })
}

func (s *MemoryStore) RemoveParticipant(_ context.Context, name, email string) (domain.Activity, error) {
	return s.update(name, func(a *domain.Activity) error { return a.Remove(email) })
}

func (s *MemoryStore) update(name string, fn func(*domain.Activity) error) (domain.Activity, error) {
	e, ok := s.entries[name]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(&e.activity); err != nil {
		return domain.Activity{}, err
	}
	e.activity.Version++
	return e.activity.Clone(), nil
}
