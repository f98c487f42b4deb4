package search

import (
	"sync"
	"time"
)

// Sessions hands out one Engine per dashboard session so each client keeps
// its own memoized view. Idle sessions are swept.
type Sessions struct {
	mu        sync.Mutex
	engines   map[string]*session
	idleTTL   time.Duration
	max       int
	lastSweep time.Time
	now       func() time.Time
}

type session struct {
	engine   *Engine
	lastSeen time.Time
}

// NewSessions keeps at most max sessions, each for idleTTL after its last use.
func NewSessions(max int, idleTTL time.Duration) *Sessions {
	if max < 1 {
		max = 1
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Sessions{
		engines:   make(map[string]*session),
		idleTTL:   idleTTL,
		max:       max,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Engine returns the engine of id, creating it on first use.
func (s *Sessions) Engine(id string) *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL || len(s.engines) >= s.max {
		s.sweepLocked(now)
	}

	sess, ok := s.engines[id]
	if !ok {
		if len(s.engines) >= s.max {
			s.evictOldestLocked()
		}
		sess = &session{engine: NewEngine(nil)}
		s.engines[id] = sess
	}
	sess.lastSeen = now
	return sess.engine
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engines)
}

func (s *Sessions) sweepLocked(now time.Time) {
	for id, sess := range s.engines {
		if now.Sub(sess.lastSeen) > s.idleTTL {
			delete(s.engines, id)
		}
	}
	s.lastSweep = now
}

func (s *Sessions) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.engines {
		if oldestID == "" || sess.lastSeen.Before(oldest) {
			oldestID, oldest = id, sess.lastSeen
		}
	}
	delete(s.engines, oldestID)
}
