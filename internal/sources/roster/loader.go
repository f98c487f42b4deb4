// Package roster reads employees from a local YAML file, for offline and
// development use.
package roster

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

var envVar = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader handles loading and parsing of a roster file
type Loader struct {
	filePath string
	mapper   *Mapper
}

// NewLoader creates a new roster loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		mapper:   NewMapper(),
	}
}

func (l *Loader) Name() string { return "roster:" + l.filePath }

// Load reads and parses the roster file. ${VAR} references are replaced by
// the environment value, or an empty string when unset.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	data = envVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envVar.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse roster yaml: %w", err)
	}
	return f, nil
}

// List implements sources.Source. The file is re-read on every call so a
// reload picks up edits.
func (l *Loader) List(_ context.Context) ([]domain.Employee, error) {
	f, err := l.Load()
	if err != nil {
		return nil, err
	}
	return l.mapper.MapUsers(f)
}

// Get implements sources.Source.
func (l *Loader) Get(ctx context.Context, id int) (domain.Employee, error) {
	employees, err := l.List(ctx)
	if err != nil {
		return domain.Employee{}, err
	}
	for _, e := range employees {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Employee{}, sources.ErrNotFound
}
