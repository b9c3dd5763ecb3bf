package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/activities/internal/domain"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s, err := NewMemoryStore(DefaultActivities())
	require.NoError(t, err)
	return s
}

func TestNewMemoryStore_RejectsBadSeed(t *testing.T) {
	_, err := NewMemoryStore([]domain.Activity{{Name: ""}})
	assert.Error(t, err)

	_, err = NewMemoryStore([]domain.Activity{{Name: "A"}, {Name: "A"}})
	assert.Error(t, err)

	_, err = NewMemoryStore([]domain.Activity{{Name: "A", Participants: []string{"x@y", "x@y"}}})
	assert.Error(t, err)
}

func TestMemoryStore_ListKeepsSeedOrder(t *testing.T) {
	s := newTestStore(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)

	seed := DefaultActivities()
	require.Len(t, list, len(seed))
	for i := range seed {
		assert.Equal(t, seed[i].Name, list[i].Name)
	}
}

func TestMemoryStore_Get(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Get(context.Background(), "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", a.Schedule)
	assert.Equal(t, 12, a.MaxParticipants)

	_, err = s.Get(context.Background(), "Nonexistent")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestMemoryStore_AddParticipant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddParticipant(ctx, "Chess Club", "new@student.edu")
	require.NoError(t, err)
	assert.Equal(t, "new@student.edu", a.Participants[len(a.Participants)-1])

	_, err = s.AddParticipant(ctx, "Chess Club", "new@student.edu")
	assert.ErrorIs(t, err, domain.ErrAlreadySignedUp)

	_, err = s.AddParticipant(ctx, "Nonexistent", "new@student.edu")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestMemoryStore_RemoveParticipant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, a.Participants)

	_, err = s.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = s.RemoveParticipant(ctx, "Nonexistent", "michael@mergington.edu")
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	a.Participants[0] = "tampered@x.edu"

	list, err := s.List(ctx)
	require.NoError(t, err)
	list[0].Participants = nil

	again, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, again.Participants)
}

func TestMemoryStore_ConcurrentDistinctSignups(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddParticipant(ctx, "Math Club", fmt.Sprintf("s%d@mergington.edu", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	a, err := s.Get(ctx, "Math Club")
	require.NoError(t, err)
	assert.Len(t, a.Participants, n+2)
}

func TestMemoryStore_ConcurrentSameEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const n = 50
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddParticipant(ctx, "Art Club", "same@mergington.edu"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrAlreadySignedUp)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	a, err := s.Get(ctx, "Art Club")
	require.NoError(t, err)
	assert.Len(t, a.Participants, 3)
}

func TestMemoryStore_VersionCountsChanges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Get(ctx, "Art Club")
	require.NoError(t, err)
	assert.Zero(t, a.Version)

	a, err = s.AddParticipant(ctx, "Art Club", "v@x.edu")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a.Version)

	_, err = s.AddParticipant(ctx, "Art Club", "v@x.edu")
	require.ErrorIs(t, err, domain.ErrAlreadySignedUp)
	_, err = s.RemoveParticipant(ctx, "Art Club", "nobody@x.edu")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)

	a, err = s.RemoveParticipant(ctx, "Art Club", "v@x.edu")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), a.Version)

	other, err := s.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Zero(t, other.Version, "versions are per activity")
}

func TestMemoryStore_ConcurrentSignupsGetDistinctVersions(t *testing.T) {
	s := newTestStore(t)
	const n = 40

	versions := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.AddParticipant(context.Background(), "Math Club", fmt.Sprintf("v%d@x.edu", i))
			assert.NoError(t, err)
			versions <- a.Version
		}()
	}
	wg.Wait()
	close(versions)

	seen := make(map[uint64]bool, n)
	for v := range versions {
		assert.False(t, seen[v], "version %d handed out twice", v)
		seen[v] = true
		assert.True(t, v >= 1 && v <= n, v)
	}
	assert.Len(t, seen, n)
}
