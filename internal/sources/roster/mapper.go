package roster

import (
	"fmt"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// Mapper converts roster entries to annotated employees
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapUsers keeps file order. Entries without a positive id and repeated ids
// are skipped; the first occurrence wins.
func (m *Mapper) MapUsers(f File) ([]domain.Employee, error) {
	seen := make(map[int]struct{}, len(f.Users))
	employees := make([]domain.Employee, 0, len(f.Users))

	for _, u := range f.Users {
		if u.ID <= 0 {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}

		employees = append(employees, domain.Annotate(domain.Person{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Age:       u.Age,
			Phone:     u.Phone,
			Image:     u.Image,
			Address:   u.Address,
		}))
	}

	if len(employees) == 0 {
		return nil, fmt.Errorf("no valid users found in roster")
	}
	return employees, nil
}
