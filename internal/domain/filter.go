package domain

import "strings"

// FilterCriteria holds the transient search constraints of a view.
// An empty SearchTerm, Departments or Ratings means "no restriction".
type FilterCriteria struct {
	SearchTerm  string
	Departments []string
	Ratings     []int
}

// IsEmpty reports whether the criteria restrict nothing.
func (c FilterCriteria) IsEmpty() bool {
	return c.SearchTerm == "" && len(c.Departments) == 0 && len(c.Ratings) == 0
}

// Equal compares criteria by value. Department and rating sets are compared
// as sets, so order and duplicates do not matter.
func (c FilterCriteria) Equal(o FilterCriteria) bool {
	if c.SearchTerm != o.SearchTerm {
		return false
	}
	return sameSet(c.Departments, o.Departments) && sameSet(c.Ratings, o.Ratings)
}

// FilterEmployees returns the employees matching every active criterion, in
// their original relative order. The input slice is never modified and the
// result is always a fresh slice.
func FilterEmployees(records []Employee, c FilterCriteria) []Employee {
	m := newMatcher(c)

	out := make([]Employee, 0, len(records))
	for _, e := range records {
		if m.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// matcher precomputes the lowered term and the membership sets once per
// filter call.
type matcher struct {
	term        string
	departments map[string]struct{}
	ratings     map[int]struct{}
}

func newMatcher(c FilterCriteria) matcher {
	m := matcher{term: strings.ToLower(c.SearchTerm)}
	if len(c.Departments) > 0 {
		m.departments = make(map[string]struct{}, len(c.Departments))
		for _, d := range c.Departments {
			m.departments[d] = struct{}{}
		}
	}
	if len(c.Ratings) > 0 {
		m.ratings = make(map[int]struct{}, len(c.Ratings))
		for _, r := range c.Ratings {
			m.ratings[r] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(e Employee) bool {
	return m.matchText(e) && m.matchDepartment(e) && m.matchRating(e)
}

func (m matcher) matchText(e Employee) bool {
	if m.term == "" {
		return true
	}
	for _, field := range [...]string{e.FirstName, e.LastName, e.Email, e.Department} {
		if strings.Contains(strings.ToLower(field), m.term) {
			return true
		}
	}
	return false
}

func (m matcher) matchDepartment(e Employee) bool {
	if m.departments == nil {
		return true
	}
	_, ok := m.departments[e.Department]
	return ok
}

func (m matcher) matchRating(e Employee) bool {
	if m.ratings == nil {
		return true
	}
	_, ok := m.ratings[e.Rating]
	return ok
}

func sameSet[T comparable](a, b []T) bool {
	as := make(map[T]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[T]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
