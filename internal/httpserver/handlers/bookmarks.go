package handlers

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

// maxSourceFetches bounds concurrent source lookups per request.
const maxSourceFetches = 4

type bookmarksResponse struct {
	IDs     []int          `json:"ids"`
	Items   []employeeView `json:"items"`
	Missing []int          `json:"missing"`
}

type toggleResponse struct {
	ID         int  `json:"id"`
	Bookmarked bool `json:"bookmarked"`
}

// Bookmarks lists the bookmarked employees in bookmark order. Ids absent
// from the roster are fetched from the source; the ones that still cannot be
// resolved are reported in missing.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := d.Bookmarks.List()
		resolved := resolveEmployees(r.Context(), d, ids)

		resp := bookmarksResponse{
			IDs:     ids,
			Items:   make([]employeeView, 0, len(ids)),
			Missing: []int{},
		}
		for i, id := range ids {
			if resolved[i] == nil {
				resp.Missing = append(resp.Missing, id)
				continue
			}
			resp.Items = append(resp.Items, employeeView{Employee: *resolved[i], Bookmarked: true})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// resolveEmployees returns one entry per id, nil when it could not be found.
func resolveEmployees(ctx context.Context, d deps.Deps, ids []int) []*domain.Employee {
	out := make([]*domain.Employee, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSourceFetches)

	for i, id := range ids {
		if e, ok := d.Roster.Get(id); ok {
			out[i] = &e
			continue
		}
		if d.Source == nil {
			continue
		}
		g.Go(func() error {
			e, err := d.Source.Get(ctx, id)
			if err != nil {
				if !errors.Is(err, sources.ErrNotFound) {
					d.Logger.Warn("failed to resolve bookmarked employee",
						logger.Int("id", id),
						logger.Error(err))
				}
				return nil
			}
			out[i] = &e
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// AddBookmark bookmarks {id}. Persistence failures are never reported.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		d.Bookmarks.Add(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveBookmark drops {id} from the bookmarks.
func RemoveBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		d.Bookmarks.Remove(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toggleResponse{ID: id, Bookmarked: d.Bookmarks.Toggle(id)})
	}
}
