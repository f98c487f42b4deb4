// Package sources defines where employee records come from.
package sources

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

// ErrNotFound is returned by Source.Get for an unknown id.
var ErrNotFound = errors.New("employee not found")

// Source loads annotated employee records.
type Source interface {
	// List returns the roster in source order.
	List(ctx context.Context) ([]domain.Employee, error)
	// Get returns a single employee by id, or ErrNotFound.
	Get(ctx context.Context, id int) (domain.Employee, error)
	// Name identifies the source in logs and status output.
	Name() string
}
