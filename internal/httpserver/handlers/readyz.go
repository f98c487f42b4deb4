package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool   `json:"ready"`
	Employees int    `json:"employees"`
	Origin    string `json:"origin,omitempty"`
}

// Readyz answers 503 until a roster has been loaded, from the source or a
// snapshot.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:     d.Roster.Loaded(),
			Employees: d.Roster.Count(),
			Origin:    d.Roster.Origin(),
		}
		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
