package domain

import "testing"

func TestDepartmentFor(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{id: 0, want: DepartmentEngineering},
		{id: 1, want: DepartmentMarketing},
		{id: 5, want: DepartmentOperations},
		{id: 6, want: DepartmentEngineering},
		{id: 26, want: DepartmentSales},
		{id: -1, want: DepartmentOperations},
	}

	for _, tt := range tests {
		if got := DepartmentFor(tt.id); got != tt.want {
			t.Errorf("DepartmentFor(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRatingFor_InRangeAndStable(t *testing.T) {
	seen := make(map[int]bool)
	for id := 1; id <= 500; id++ {
		r := RatingFor(id)
		if r < MinRating || r > MaxRating {
			t.Fatalf("RatingFor(%d) = %d, out of [%d,%d]", id, r, MinRating, MaxRating)
		}
		if again := RatingFor(id); again != r {
			t.Fatalf("RatingFor(%d) not stable: %d then %d", id, r, again)
		}
		seen[r] = true
	}
	if len(seen) != MaxRating-MinRating+1 {
		t.Errorf("RatingFor over 500 ids produced ratings %v, want every value in range", seen)
	}
}

func TestAnnotate(t *testing.T) {
	p := Person{
		ID:        7,
		FirstName: "Emily",
		LastName:  "Johnson",
		Email:     "emily.johnson@x.dummyjson.com",
		Age:       28,
		Address:   Address{City: "Phoenix", State: "Mississippi"},
	}

	e := Annotate(p)

	if e.ID != 7 || e.FirstName != "Emily" || e.Address.City != "Phoenix" {
		t.Errorf("Annotate() lost identity fields: %+v", e)
	}
	if e.Department != DepartmentFor(7) {
		t.Errorf("Annotate().Department = %q, want %q", e.Department, DepartmentFor(7))
	}
	if !IsDepartment(e.Department) {
		t.Errorf("Annotate().Department %q is not a known department", e.Department)
	}
	if e.Rating != RatingFor(7) {
		t.Errorf("Annotate().Rating = %d, want %d", e.Rating, RatingFor(7))
	}
	if e.FullName() != "Emily Johnson" {
		t.Errorf("FullName() = %q", e.FullName())
	}
}
