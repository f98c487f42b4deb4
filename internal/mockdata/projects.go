package mockdata

import (
	"math/rand/v2"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// Project statuses.
const (
	StatusPlanning   = "Planning"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

type Project struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Completion int    `json:"completion"`
}

// Projects returns two to four projects for e. The output depends only on the
// employee id and department, so repeated views agree.
func Projects(e domain.Employee) []Project {
	return defaultCatalog.ProjectsFor(e)
}

// ProjectsFor builds the projects of e from this catalog.
func (c *Catalog) ProjectsFor(e domain.Employee) []Project {
	rng := rand.New(rand.NewPCG(uint64(int64(e.ID)), 0x5eed))
	names := c.templates(e.Department)

	count := 2 + rng.IntN(3)
	projects := make([]Project, 0, count)
	for i := 0; i < count; i++ {
		status := c.Statuses[mod(e.ID+i*2, len(c.Statuses))]
		projects = append(projects, Project{
			ID:         i + 1,
			Name:       names[mod(e.ID*7+i*3, len(names))],
			Status:     status,
			Completion: completion(status, rng),
		})
	}
	return projects
}

func completion(status string, rng *rand.Rand) int {
	switch status {
	case StatusCompleted:
		return 100
	case StatusPlanning:
		return rng.IntN(25)
	case StatusInProgress:
		return 25 + rng.IntN(50)
	case StatusReview:
		return 75 + rng.IntN(25)
	default:
		return 10 + rng.IntN(40)
	}
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
