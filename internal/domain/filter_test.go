package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEmployees() []Employee {
	return []Employee{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.dev", Department: DepartmentEngineering, Rating: 5},
		{ID: 2, FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", Department: DepartmentEngineering, Rating: 2},
		{ID: 3, FirstName: "Don", LastName: "Draper", Email: "don@scdp.com", Department: DepartmentSales, Rating: 5},
		{ID: 4, FirstName: "Peggy", LastName: "Olson", Email: "peggy@scdp.com", Department: DepartmentMarketing, Rating: 3},
		{ID: 5, FirstName: "Toby", LastName: "Flenderson", Email: "toby@dunder.com", Department: DepartmentHR, Rating: 1},
		{ID: 6, FirstName: "Oscar", LastName: "Martinez", Email: "oscar@dunder.com", Department: DepartmentFinance, Rating: 4},
	}
}

func ids(es []Employee) []int {
	out := make([]int, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterEmployees(t *testing.T) {
	records := sampleEmployees()

	tests := []struct {
		name     string
		criteria FilterCriteria
		want     []int
	}{
		{
			name:     "empty criteria echoes input",
			criteria: FilterCriteria{},
			want:     []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:     "case insensitive first name",
			criteria: FilterCriteria{SearchTerm: "ADA"},
			want:     []int{1},
		},
		{
			name:     "substring in last name",
			criteria: FilterCriteria{SearchTerm: "ders"},
			want:     []int{5},
		},
		{
			name:     "substring in email matches several",
			criteria: FilterCriteria{SearchTerm: "@scdp"},
			want:     []int{3, 4},
		},
		{
			name:     "term matches department",
			criteria: FilterCriteria{SearchTerm: "engineer"},
			want:     []int{1, 2},
		},
		{
			name:     "department set",
			criteria: FilterCriteria{Departments: []string{DepartmentSales, DepartmentHR}},
			want:     []int{3, 5},
		},
		{
			name:     "rating set excludes the rest",
			criteria: FilterCriteria{Ratings: []int{3, 5}},
			want:     []int{1, 3, 4},
		},
		{
			name: "conjunction of department and rating",
			criteria: FilterCriteria{
				Departments: []string{DepartmentEngineering},
				Ratings:     []int{5},
			},
			want: []int{1},
		},
		{
			name: "all three criteria",
			criteria: FilterCriteria{
				SearchTerm:  "o",
				Departments: []string{DepartmentSales, DepartmentMarketing, DepartmentFinance},
				Ratings:     []int{3, 4},
			},
			want: []int{4, 6},
		},
		{
			name:     "unknown department matches nothing",
			criteria: FilterCriteria{Departments: []string{"Legal"}},
			want:     []int{},
		},
		{
			name:     "no text match",
			criteria: FilterCriteria{SearchTerm: "zzz"},
			want:     []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEmployees(records, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterEmployees_ConjunctiveScenario(t *testing.T) {
	records := []Employee{
		{ID: 10, Department: DepartmentEngineering, Rating: 5},
		{ID: 11, Department: DepartmentEngineering, Rating: 2},
		{ID: 12, Department: DepartmentSales, Rating: 5},
	}

	got := FilterEmployees(records, FilterCriteria{
		Departments: []string{DepartmentEngineering},
		Ratings:     []int{5},
	})

	require.Len(t, got, 1)
	assert.Equal(t, records[0], got[0])
}

func TestFilterEmployees_EmptyInput(t *testing.T) {
	got := FilterEmployees(nil, FilterCriteria{SearchTerm: "ada"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterEmployees_DoesNotMutateInput(t *testing.T) {
	records := sampleEmployees()
	before := append([]Employee(nil), records...)

	got := FilterEmployees(records, FilterCriteria{Ratings: []int{5}})
	require.NotEmpty(t, got)
	got[0].FirstName = "changed"

	assert.Equal(t, before, records)
}

// Every result must be a subsequence of the input, for any criteria.
func TestFilterEmployees_Subsequence(t *testing.T) {
	records := sampleEmployees()
	terms := []string{"", "a", "O", "dunder", "x"}
	deptSets := [][]string{nil, {DepartmentEngineering}, {DepartmentHR, DepartmentFinance, DepartmentSales}}
	ratingSets := [][]int{nil, {1}, {2, 4}, {1, 2, 3, 4, 5}}

	for _, term := range terms {
		for _, depts := range deptSets {
			for _, ratings := range ratingSets {
				c := FilterCriteria{SearchTerm: term, Departments: depts, Ratings: ratings}
				got := FilterEmployees(records, c)

				pos := 0
				for _, e := range got {
					for pos < len(records) && records[pos].ID != e.ID {
						pos++
					}
					require.Less(t, pos, len(records), "result %v is not a subsequence for %+v", ids(got), c)
					pos++
				}
			}
		}
	}
}

func TestFilterCriteria_Equal(t *testing.T) {
	a := FilterCriteria{SearchTerm: "x", Departments: []string{"HR", "Sales"}, Ratings: []int{1, 5}}

	assert.True(t, a.Equal(FilterCriteria{SearchTerm: "x", Departments: []string{"Sales", "HR"}, Ratings: []int{5, 1, 5}}))
	assert.False(t, a.Equal(FilterCriteria{SearchTerm: "X", Departments: []string{"HR", "Sales"}, Ratings: []int{1, 5}}))
	assert.False(t, a.Equal(FilterCriteria{SearchTerm: "x", Departments: []string{"HR"}, Ratings: []int{1, 5}}))
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.False(t, a.IsEmpty())
}
