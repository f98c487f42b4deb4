package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// Origins of a roster load.
const (
	OriginSource   = "source"
	OriginSnapshot = "snapshot"
)

// Roster holds the currently loaded employees in source order with an id
// lookup. The slice returned by All is shared and must be treated as
// read-only; every Replace installs a fresh one.
type Roster struct {
	mu         sync.RWMutex
	employees  []domain.Employee
	positions  map[int]int // ID -> index in employees
	lastReload time.Time
	origin     string
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{
		employees: []domain.Employee{},
		positions: make(map[int]int),
	}
}

// Replace swaps in a copy of employees. When ids repeat, the first one wins
// for Get and the later ones are dropped.
func (r *Roster) Replace(employees []domain.Employee, origin string) {
	next := make([]domain.Employee, 0, len(employees))
	positions := make(map[int]int, len(employees))
	for _, e := range employees {
		if _, dup := positions[e.ID]; dup {
			continue
		}
		positions[e.ID] = len(next)
		next = append(next, e)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees = next
	r.positions = positions
	r.lastReload = time.Now()
	r.origin = origin
}

// All returns the shared roster slice.
func (r *Roster) All() []domain.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.employees
}

// Get retrieves an employee by id
func (r *Roster) Get(id int) (domain.Employee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.positions[id]
	if !ok {
		return domain.Employee{}, false
	}
	return r.employees[pos], true
}

func (r *Roster) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.employees)
}

// LastReload returns when the roster was last replaced (zero before the
// first load).
func (r *Roster) LastReload() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastReload
}

// Origin reports where the current roster came from.
func (r *Roster) Origin() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.origin
}

// Loaded reports whether any load has happened yet.
func (r *Roster) Loaded() bool {
	return !r.LastReload().IsZero()
}
