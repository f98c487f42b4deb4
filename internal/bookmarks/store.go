// Package bookmarks maintains the process-wide set of bookmarked employee ids.
//
// The in-memory set is the source of truth. Every state change is written
// through to a Slot before the mutating call returns; a failed write is logged
// and counted but never undoes the change nor reaches the caller.
package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/metrics"
)

// DefaultPersistTimeout bounds a single slot read or write.
const DefaultPersistTimeout = 3 * time.Second

// Change describes one bookmark state transition.
type Change struct {
	ID         int  `json:"id"`
	Bookmarked bool `json:"bookmarked"`
	Count      int  `json:"count"`
}

// Store is the bookmark set. Build one per process with New.
type Store struct {
	// writeMu serializes mutations end to end (state, slot write, observers)
	// so they take effect strictly in call order.
	writeMu sync.Mutex

	mu      sync.RWMutex
	order   []int
	members map[int]struct{}

	subMu   sync.RWMutex
	subs    map[uint64]func(Change)
	nextSub uint64

	slot    Slot
	logger  logger.Logger
	timeout time.Duration
}

// New builds the store and loads the persisted set from slot. A missing,
// unreadable or malformed value yields an empty set.
func New(ctx context.Context, slot Slot, log logger.Logger) *Store {
	s := &Store{
		members: make(map[int]struct{}),
		subs:    make(map[uint64]func(Change)),
		slot:    slot,
		logger:  log,
		timeout: DefaultPersistTimeout,
	}
	s.load(ctx)
	metrics.BookmarkCount.Set(float64(len(s.order)))
	return s
}

func (s *Store) load(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.slot.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.Info("no persisted bookmarks, starting empty",
				logger.String("slot", s.slot.Name()))
			return
		}
		s.logger.Warn("failed to read persisted bookmarks, starting empty",
			logger.String("slot", s.slot.Name()),
			logger.Error(err))
		return
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("persisted bookmarks are malformed, starting empty",
			logger.String("slot", s.slot.Name()),
			logger.Error(err))
		return
	}

	for _, id := range ids {
		if _, dup := s.members[id]; dup {
			continue
		}
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}

	s.logger.Info("loaded persisted bookmarks",
		logger.String("slot", s.slot.Name()),
		logger.Int("count", len(s.order)))
}

// Add bookmarks id. Adding an id that is already bookmarked is a no-op.
func (s *Store) Add(id int) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.set(id, true)
}

// Remove drops id from the set. Removing an unknown id is a no-op.
func (s *Store) Remove(id int) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.set(id, false)
}

// Toggle flips the state of id and returns the new state.
func (s *Store) Toggle(id int) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	want := !s.IsBookmarked(id)
	s.set(id, want)
	return want
}

// set moves id to the wanted state and commits when that changed anything.
// Called with writeMu held.
func (s *Store) set(id int, want bool) {
	s.mu.Lock()
	_, have := s.members[id]
	if have == want {
		s.mu.Unlock()
		return
	}

	op := "add"
	if want {
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	} else {
		op = "remove"
		delete(s.members, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	// []int never fails to marshal.
	snapshot, _ := json.Marshal(append([]int{}, s.order...))
	count := len(s.order)
	s.mu.Unlock()

	s.commit(op, snapshot, Change{ID: id, Bookmarked: want, Count: count})
}

// IsBookmarked reports the current in-memory state of id.
func (s *Store) IsBookmarked(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// List returns the bookmarked ids in the order they were added.
func (s *Store) List() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int{}, s.order...)
}

// Count returns the number of bookmarked ids.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// SlotName identifies the persistence backend, for status reporting.
func (s *Store) SlotName() string {
	return s.slot.Name()
}

// Subscribe registers fn to be called synchronously after every state change.
// fn must not mutate the store. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// commit writes the snapshot through to the slot and notifies observers.
// Called with writeMu held.
func (s *Store) commit(op string, snapshot []byte, ch Change) {
	metrics.BookmarkMutations.WithLabelValues(op).Inc()
	metrics.BookmarkCount.Set(float64(ch.Count))

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	err := s.slot.Save(ctx, snapshot)
	cancel()
	if err != nil {
		metrics.BookmarkPersistFailures.Inc()
		s.logger.Error("failed to persist bookmarks, keeping in-memory state",
			logger.String("op", op),
			logger.Int("id", ch.ID),
			logger.String("slot", s.slot.Name()),
			logger.Error(err))
	} else {
		s.logger.Debug("bookmarks persisted",
			logger.String("op", op),
			logger.Int("id", ch.ID),
			logger.Int("count", ch.Count))
	}

	s.subMu.RLock()
	observers := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range observers {
		fn(ch)
	}
}
