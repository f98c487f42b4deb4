package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Person is the raw identity of a user as delivered by a record source,
// before any synthetic annotation.
type Person struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	Age       int
	Phone     string
	Address   Address
	Image     string
}

// Annotate turns a Person into an Employee by attaching a department and a
// rating. Both are pure functions of the id, so the same person always gets
// the same annotation whichever view or source loaded it.
func Annotate(p Person) Employee {
	return Employee{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Age:        p.Age,
		Phone:      p.Phone,
		Address:    p.Address,
		Image:      p.Image,
		Department: DepartmentFor(p.ID),
		Rating:     RatingFor(p.ID),
	}
}

// DepartmentFor assigns departments round-robin over the enumeration.
func DepartmentFor(id int) string {
	n := len(Departments)
	return Departments[((id%n)+n)%n]
}

// RatingFor derives a rating in [MinRating, MaxRating] from the id hash.
func RatingFor(id int) int {
	sum := xxhash.Sum64String("rating:" + strconv.Itoa(id))
	return MinRating + int(sum%uint64(MaxRating-MinRating+1))
}
