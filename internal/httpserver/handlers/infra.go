package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
)

const probeTimeout = 2 * time.Second

type componentStatus struct {
	OK         bool   `json:"ok"`
	Employees  *int   `json:"employees,omitempty"`
	Bookmarks  *int   `json:"bookmarks,omitempty"`
	Clients    *int   `json:"clients,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Name       string `json:"name,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Infra reports the state of every component the dashboard depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employees := d.Roster.Count()
		lastReload := "never"
		if t := d.Roster.LastReload(); !t.IsZero() {
			lastReload = t.Format("2006-01-02 15:04:05")
		}
		count := d.Bookmarks.Count()

		components := map[string]componentStatus{
			"roster": {
				OK:         employees > 0,
				Employees:  &employees,
				LastReload: lastReload,
				Origin:     d.Roster.Origin(),
			},
			"bookmarks": {
				OK:        true,
				Bookmarks: &count,
				Name:      d.Bookmarks.SlotName(),
			},
			"source": checkSource(r.Context(), d),
		}
		if d.Snapshots != nil {
			components["redis"] = checkSnapshots(r.Context(), d)
		}
		if d.SQL != nil {
			components["sql"] = probe(r.Context(), "bookmark-writes-failing", d.SQL.Ping)
		}
		if d.Hub != nil {
			clients := d.Hub.Clients()
			components["websocket"] = componentStatus{OK: true, Clients: &clients}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func checkSource(ctx context.Context, d deps.Deps) componentStatus {
	p, ok := d.Source.(pinger)
	if !ok {
		return componentStatus{OK: true, Name: d.Source.Name()}
	}
	st := probe(ctx, "detail-fallback-disabled", p.Ping)
	st.Name = d.Source.Name()
	return st
}

func checkSnapshots(ctx context.Context, d deps.Deps) componentStatus {
	st := probe(ctx, "roster-snapshots-disabled", d.Snapshots.Ping)
	if !st.OK {
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	savedAt, err := d.Snapshots.RosterSavedAt(ctx)
	switch {
	case err != nil:
		st.Error = err.Error()
	case savedAt.IsZero():
		st.LastReload = "never"
	default:
		st.LastReload = savedAt.Format("2006-01-02 15:04:05")
	}
	return st
}

func probe(parent context.Context, impact string, ping func(context.Context) error) componentStatus {
	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		return componentStatus{OK: false, Impact: impact, Error: err.Error()}
	}
	return componentStatus{OK: true}
}

// determineMode is "critical" with an empty roster, "degraded" when any
// other component is down and "ok" otherwise.
func determineMode(components map[string]componentStatus) string {
	if roster, exists := components["roster"]; exists && !roster.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}
