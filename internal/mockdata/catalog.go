// Package mockdata generates the synthetic business data shown next to real
// employee records: projects, performance feedback and dashboard analytics.
// Everything here is a stand-in until an HR system backs these views.
package mockdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog lists project name templates per department and the project
// status cycle.
type Catalog struct {
	Statuses []string            `yaml:"statuses"`
	Projects map[string][]string `yaml:"projects"`
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse project catalog: %w", err)
	}
	if len(c.Statuses) == 0 {
		return nil, fmt.Errorf("project catalog has no statuses")
	}
	if len(c.Projects[domain.DepartmentOperations]) == 0 {
		return nil, fmt.Errorf("project catalog has no %s templates", domain.DepartmentOperations)
	}
	return &c, nil
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// templates returns the names for department, falling back to Operations.
func (c *Catalog) templates(department string) []string {
	if names := c.Projects[department]; len(names) > 0 {
		return names
	}
	return c.Projects[domain.DepartmentOperations]
}
