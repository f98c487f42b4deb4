package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

func roster() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", Department: domain.DepartmentEngineering, Rating: 5},
		{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@x.io", Department: domain.DepartmentEngineering, Rating: 2},
		{ID: 3, FirstName: "Don", LastName: "Draper", Email: "don@x.io", Department: domain.DepartmentSales, Rating: 5},
	}
}

func TestEngine_EmptyCriteriaReturnsAll(t *testing.T) {
	records := roster()
	e := NewEngine(records)

	assert.Equal(t, records, e.Results())
	assert.Equal(t, 3, e.Total())
}

func TestEngine_MemoizesOnUnchangedInputs(t *testing.T) {
	e := NewEngine(roster())
	e.SetRatings([]int{5})

	first := e.Results()
	second := e.Results()

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.Computations())

	// Same criteria, different order: still a hit.
	e.SetRatings([]int{5, 5})
	e.Results()
	assert.Equal(t, 1, e.Computations())
}

func TestEngine_RecomputesOnEveryInputChange(t *testing.T) {
	records := roster()
	e := NewEngine(records)
	e.Results()

	steps := []struct {
		name   string
		change func()
		want   []int
	}{
		{name: "search term", change: func() { e.SetSearchTerm("D") }, want: []int{1, 3}},
		{name: "departments", change: func() { e.SetDepartments([]string{domain.DepartmentSales}) }, want: []int{3}},
		{name: "ratings", change: func() { e.SetRatings([]int{2}) }, want: []int{}},
		{name: "clear", change: func() { e.Clear() }, want: []int{1, 2, 3}},
		{name: "records", change: func() { e.SetRecords(records[:1]) }, want: []int{1}},
	}

	for i, step := range steps {
		step.change()
		got := e.Results()

		gotIDs := make([]int, 0, len(got))
		for _, r := range got {
			gotIDs = append(gotIDs, r.ID)
		}
		assert.Equal(t, step.want, gotIDs, step.name)
		assert.Equal(t, i+2, e.Computations(), "%s should trigger a recompute", step.name)
	}
}

func TestEngine_NewSliceWithSameContentRecomputes(t *testing.T) {
	e := NewEngine(roster())
	e.Results()

	e.SetRecords(roster())
	e.Results()

	assert.Equal(t, 2, e.Computations())
}

func TestEngine_CriteriaIsACopy(t *testing.T) {
	e := NewEngine(roster())
	depts := []string{domain.DepartmentSales}
	e.SetDepartments(depts)
	depts[0] = domain.DepartmentHR

	c := e.Criteria()
	assert.Equal(t, []string{domain.DepartmentSales}, c.Departments)

	c.Departments[0] = domain.DepartmentFinance
	assert.Equal(t, []string{domain.DepartmentSales}, e.Criteria().Departments)
}

func TestEngine_SetCriteria(t *testing.T) {
	e := NewEngine(roster())
	e.SetCriteria(domain.FilterCriteria{SearchTerm: "grace", Ratings: []int{2}})

	got := e.Results()
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}
