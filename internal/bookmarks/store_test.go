package bookmarks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/staffdash/internal/logger"
)

func newStore(t *testing.T, slot Slot) *Store {
	t.Helper()
	return New(context.Background(), slot, logger.NewNop())
}

func TestStore_StartsEmpty(t *testing.T) {
	s := newStore(t, NewMemorySlot())

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List())
	assert.False(t, s.IsBookmarked(42))
}

func TestStore_AddRemove(t *testing.T) {
	slot := NewMemorySlot()
	s := newStore(t, slot)

	s.Add(42)
	assert.True(t, s.IsBookmarked(42))
	assert.Equal(t, []int{42}, s.List())
	assert.JSONEq(t, `[42]`, string(slot.Data()))

	s.Remove(42)
	assert.False(t, s.IsBookmarked(42))
	assert.Empty(t, s.List())
	assert.JSONEq(t, `[]`, string(slot.Data()))
}

func TestStore_Idempotent(t *testing.T) {
	slot := NewMemorySlot()
	s := newStore(t, slot)

	s.Add(7)
	s.Add(7)
	assert.Equal(t, []int{7}, s.List())
	assert.Equal(t, 1, slot.Saves(), "a no-op add must not write")

	s.Remove(7)
	s.Remove(7)
	s.Remove(99)
	assert.Empty(t, s.List())
	assert.Equal(t, 2, slot.Saves(), "no-op removes must not write")
}

func TestStore_InverseRestoresPriorState(t *testing.T) {
	s := newStore(t, NewMemorySlot())
	s.Add(1)
	s.Add(2)
	before := s.List()

	s.Add(3)
	s.Remove(3)

	assert.Equal(t, before, s.List())
	assert.False(t, s.IsBookmarked(3))
}

func TestStore_PreservesInsertionOrder(t *testing.T) {
	slot := NewMemorySlot()
	s := newStore(t, slot)

	for _, id := range []int{5, 3, 9, 1} {
		s.Add(id)
	}
	s.Remove(3)

	assert.Equal(t, []int{5, 9, 1}, s.List())
	assert.JSONEq(t, `[5,9,1]`, string(slot.Data()))
}

func TestStore_Toggle(t *testing.T) {
	s := newStore(t, NewMemorySlot())

	assert.True(t, s.Toggle(11))
	assert.True(t, s.IsBookmarked(11))
	assert.False(t, s.Toggle(11))
	assert.False(t, s.IsBookmarked(11))
}

func TestStore_ListIsACopy(t *testing.T) {
	s := newStore(t, NewMemorySlot())
	s.Add(1)

	l := s.List()
	l[0] = 100

	assert.Equal(t, []int{1}, s.List())
}

func TestStore_RoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "bookmarks.json")

	first := newStore(t, NewFileSlot(path))
	first.Add(42)
	first.Add(7)

	restarted := newStore(t, NewFileSlot(path))
	assert.True(t, restarted.IsBookmarked(42))
	assert.True(t, restarted.IsBookmarked(7))
	assert.Equal(t, []int{42, 7}, restarted.List())
}

func TestStore_LoadFailuresStartEmpty(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *MemorySlot)
	}{
		{name: "malformed json", setup: func(m *MemorySlot) { m.Set([]byte(`{"ids":`)) }},
		{name: "wrong shape", setup: func(m *MemorySlot) { m.Set([]byte(`["a","b"]`)) }},
		{name: "read error", setup: func(m *MemorySlot) { m.FailLoad(errors.New("storage disabled")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewMemorySlot()
			tt.setup(slot)

			s := newStore(t, slot)
			assert.Equal(t, 0, s.Count())

			// The store stays usable afterwards.
			slot.FailLoad(nil)
			s.Add(1)
			assert.True(t, s.IsBookmarked(1))
		})
	}
}

func TestStore_LoadCollapsesDuplicates(t *testing.T) {
	slot := NewMemorySlot()
	slot.Set([]byte(`[3,1,3,2,1]`))

	s := newStore(t, slot)
	assert.Equal(t, []int{3, 1, 2}, s.List())
}

func TestStore_WriteFailureKeepsMemoryState(t *testing.T) {
	slot := NewMemorySlot()
	s := newStore(t, slot)
	s.Add(1)

	slot.FailSave(errors.New("quota exceeded"))
	s.Add(2)
	s.Remove(1)

	assert.True(t, s.IsBookmarked(2))
	assert.False(t, s.IsBookmarked(1))
	assert.JSONEq(t, `[1]`, string(slot.Data()), "slot keeps the last successful write")

	slot.FailSave(nil)
	s.Add(3)
	assert.JSONEq(t, `[2,3]`, string(slot.Data()), "next successful write carries the full set")
}

func TestStore_SubscribeSeesChangeSynchronously(t *testing.T) {
	s := newStore(t, NewMemorySlot())

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		// State is already visible to observers.
		assert.Equal(t, c.Bookmarked, s.IsBookmarked(c.ID))
		got = append(got, c)
	})

	s.Add(4)
	s.Add(4)
	s.Add(5)
	s.Remove(4)

	require.Len(t, got, 3)
	assert.Equal(t, Change{ID: 4, Bookmarked: true, Count: 1}, got[0])
	assert.Equal(t, Change{ID: 5, Bookmarked: true, Count: 2}, got[1])
	assert.Equal(t, Change{ID: 4, Bookmarked: false, Count: 1}, got[2])

	unsubscribe()
	unsubscribe()
	s.Add(6)
	assert.Len(t, got, 3)
}

func TestStore_ConcurrentMutations(t *testing.T) {
	slot := NewMemorySlot()
	s := newStore(t, slot)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Add(id)
			s.Add(id)
			if id%2 == 0 {
				s.Remove(id)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, s.Count())

	restarted := newStore(t, slot)
	assert.ElementsMatch(t, s.List(), restarted.List())
}

func TestFileSlot_MissingFileIsEmpty(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "none.json"))
	_, err := slot.Load(context.Background())
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestFileSlot_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	slot := NewFileSlot(path)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte(`[1,2,3]`)))
	require.NoError(t, slot.Save(ctx, []byte(`[4]`)))

	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[4]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
