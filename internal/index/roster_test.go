package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

func employees(ids ...int) []domain.Employee {
	out := make([]domain.Employee, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Employee{ID: id, FirstName: "E", Department: domain.DepartmentFor(id)})
	}
	return out
}

func TestNewRoster(t *testing.T) {
	r := NewRoster()

	if r.Count() != 0 {
		t.Errorf("Count() = %d, want 0", r.Count())
	}
	if r.Loaded() {
		t.Error("Loaded() = true, want false before first Replace")
	}
	if got := r.All(); got == nil || len(got) != 0 {
		t.Errorf("All() = %v, want empty non-nil slice", got)
	}
}

func TestReplaceKeepsOrder(t *testing.T) {
	r := NewRoster()
	r.Replace(employees(5, 2, 9), OriginSource)

	got := r.All()
	want := []int{5, 2, 9}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("All()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
	if !r.Loaded() {
		t.Error("Loaded() = false, want true")
	}
	if r.Origin() != OriginSource {
		t.Errorf("Origin() = %q, want %q", r.Origin(), OriginSource)
	}
}

func TestReplaceOverwrites(t *testing.T) {
	r := NewRoster()
	r.Replace(employees(1, 2), OriginSnapshot)
	r.Replace(employees(3), OriginSource)

	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
	if _, ok := r.Get(1); ok {
		t.Error("Get(1) found a stale employee")
	}
	if _, ok := r.Get(3); !ok {
		t.Error("Get(3) not found")
	}
}

func TestReplaceDropsDuplicates(t *testing.T) {
	r := NewRoster()
	in := employees(1, 2, 1)
	in[2].FirstName = "Later"
	r.Replace(in, OriginSource)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	e, _ := r.Get(1)
	if e.FirstName != "E" {
		t.Errorf("Get(1).FirstName = %q, want first occurrence", e.FirstName)
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	r := NewRoster()
	in := employees(1)
	r.Replace(in, OriginSource)

	in[0].FirstName = "Mutated"
	if e, _ := r.Get(1); e.FirstName != "E" {
		t.Errorf("Get(1).FirstName = %q, roster must not alias the caller slice", e.FirstName)
	}
}

func TestReplaceInstallsNewSlice(t *testing.T) {
	r := NewRoster()
	r.Replace(employees(1, 2), OriginSource)
	before := r.All()

	r.Replace(employees(1, 2), OriginSource)
	after := r.All()

	if &before[0] == &after[0] {
		t.Error("Replace() reused the previous backing array")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRoster()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Replace(employees(n, n+1), OriginSource)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = r.All()
			_, _ = r.Get(n)
			_ = r.Count()
		}(i)
	}
	wg.Wait()

	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}
