// Package search holds per-session filter state over a record collection and
// memoizes the filtered view.
package search

import (
	"sync"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// Engine keeps the current records and criteria of one view session and
// recomputes the filtered result only when one of them changed.
//
// The memo key is the identity of the records slice (first element address
// and length) plus the criteria compared by value. Replacing the records with
// a different slice, even one with equal contents, always recomputes.
type Engine struct {
	mu       sync.Mutex
	records  []domain.Employee
	criteria domain.FilterCriteria

	cached     []domain.Employee
	cachedKey  recordsKey
	cachedCrit domain.FilterCriteria
	valid      bool

	computations int
}

type recordsKey struct {
	first *domain.Employee
	n     int
}

func keyOf(records []domain.Employee) recordsKey {
	if len(records) == 0 {
		return recordsKey{}
	}
	return recordsKey{first: &records[0], n: len(records)}
}

// NewEngine returns an engine over records with empty criteria.
func NewEngine(records []domain.Employee) *Engine {
	return &Engine{records: records}
}

// SetRecords replaces the collection being filtered.
func (e *Engine) SetRecords(records []domain.Employee) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = records
}

func (e *Engine) SetSearchTerm(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.SearchTerm = term
}

func (e *Engine) SetDepartments(departments []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.Departments = append([]string(nil), departments...)
}

func (e *Engine) SetRatings(ratings []int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria.Ratings = append([]int(nil), ratings...)
}

// SetCriteria replaces all three criteria at once.
func (e *Engine) SetCriteria(c domain.FilterCriteria) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria = domain.FilterCriteria{
		SearchTerm:  c.SearchTerm,
		Departments: append([]string(nil), c.Departments...),
		Ratings:     append([]int(nil), c.Ratings...),
	}
}

// Clear resets the criteria to "no restriction".
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria = domain.FilterCriteria{}
}

// Criteria returns a copy of the current criteria.
func (e *Engine) Criteria() domain.FilterCriteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.FilterCriteria{
		SearchTerm:  e.criteria.SearchTerm,
		Departments: append([]string(nil), e.criteria.Departments...),
		Ratings:     append([]int(nil), e.criteria.Ratings...),
	}
}

// Total is the size of the unfiltered collection.
func (e *Engine) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.records)
}

// Results returns the filtered records for the current inputs. Callers must
// treat the returned slice as read-only; it is shared until inputs change.
func (e *Engine) Results() []domain.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resultsLocked()
}

// Apply installs records and criteria and returns the filtered view, all
// under one lock so concurrent callers never observe each other's inputs.
func (e *Engine) Apply(records []domain.Employee, c domain.FilterCriteria) []domain.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.records = records
	e.criteria = domain.FilterCriteria{
		SearchTerm:  c.SearchTerm,
		Departments: append([]string(nil), c.Departments...),
		Ratings:     append([]int(nil), c.Ratings...),
	}
	return e.resultsLocked()
}

func (e *Engine) resultsLocked() []domain.Employee {
	key := keyOf(e.records)
	if e.valid && key == e.cachedKey && e.criteria.Equal(e.cachedCrit) {
		return e.cached
	}

	e.cached = domain.FilterEmployees(e.records, e.criteria)
	e.cachedKey = key
	e.cachedCrit = domain.FilterCriteria{
		SearchTerm:  e.criteria.SearchTerm,
		Departments: append([]string(nil), e.criteria.Departments...),
		Ratings:     append([]int(nil), e.criteria.Ratings...),
	}
	e.valid = true
	e.computations++
	return e.cached
}

// Computations reports how many times the filter actually ran.
func (e *Engine) Computations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.computations
}
