package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/staffdash/internal/logger"
	"github.com/MrSnakeDoc/staffdash/internal/metrics"
	"github.com/MrSnakeDoc/staffdash/internal/mockdata"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

// employeeView is an employee as listed on the dashboard.
type employeeView struct {
	domain.Employee
	Bookmarked bool `json:"bookmarked"`
}

type employeesResponse struct {
	Items    []employeeView   `json:"items"`
	Total    int              `json:"total"`
	Shown    int              `json:"shown"`
	Criteria criteriaResponse `json:"criteria"`
}

type employeeDetailResponse struct {
	Employee   domain.Employee     `json:"employee"`
	Projects   []mockdata.Project  `json:"projects"`
	Feedback   []mockdata.Feedback `json:"feedback"`
	Bookmarked bool                `json:"bookmarked"`
}

type actionResponse struct {
	ID     int    `json:"id"`
	Action string `json:"action"`
	Status string `json:"status"`
}

func views(d deps.Deps, employees []domain.Employee) []employeeView {
	out := make([]employeeView, len(employees))
	for i, e := range employees {
		out[i] = employeeView{Employee: e, Bookmarked: d.Bookmarks.IsBookmarked(e.ID)}
	}
	return out
}

// Employees lists the roster filtered by q, department and rating.
func Employees(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := parseCriteria(r.URL.Query())
		records := d.Roster.All()

		results := d.Sessions.Engine(sessionID(w, r)).Apply(records, c)
		metrics.FilterRequests.Inc()
		metrics.FilterResultSize.Observe(float64(len(results)))

		writeJSON(w, http.StatusOK, employeesResponse{
			Items:    views(d, results),
			Total:    len(records),
			Shown:    len(results),
			Criteria: toCriteriaResponse(c),
		})
	}
}

// Employee returns one employee with its projects and feedback. Ids missing
// from the roster are looked up in the source.
func Employee(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		e, ok := d.Roster.Get(id)
		if !ok {
			e, err = d.Source.Get(r.Context(), id)
			switch {
			case errors.Is(err, sources.ErrNotFound):
				writeError(w, http.StatusNotFound, "employee not found")
				return
			case err != nil:
				d.Logger.Warn("failed to fetch employee from source",
					logger.Int("id", id),
					logger.String("source", d.Source.Name()),
					logger.Error(err))
				writeError(w, http.StatusBadGateway, "employee source unavailable")
				return
			}
		}

		writeJSON(w, http.StatusOK, employeeDetailResponse{
			Employee:   e,
			Projects:   mockdata.Projects(e),
			Feedback:   mockdata.RecentFeedback(),
			Bookmarked: d.Bookmarks.IsBookmarked(id),
		})
	}
}

// Promote acknowledges a promotion request. Nothing is persisted.
func Promote(d deps.Deps) http.HandlerFunc {
	return acknowledge(d, "promote")
}

// AssignProject acknowledges a project assignment. The optional JSON body
// {"project": "..."} is only logged.
func AssignProject(d deps.Deps) http.HandlerFunc {
	return acknowledge(d, "assign_project")
}

type actionRequest struct {
	Project string `json:"project"`
	Note    string `json:"note"`
}

func acknowledge(d deps.Deps, action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req actionRequest
		if r.Body != nil {
			dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
			if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		fields := []logger.Field{
			logger.String("action", action),
			logger.Int("id", id),
		}
		if p := strings.TrimSpace(req.Project); p != "" {
			fields = append(fields, logger.String("project", p))
		}
		if n := strings.TrimSpace(req.Note); n != "" {
			fields = append(fields, logger.String("note", n))
		}
		d.Logger.Info("employee action requested", fields...)

		writeJSON(w, http.StatusAccepted, actionResponse{ID: id, Action: action, Status: "accepted"})
	}
}

// Departments returns the department enumeration in display order.
func Departments(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"departments": domain.Departments})
	}
}

// Analytics aggregates the loaded roster and the bookmark count.
func Analytics(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, mockdata.ComputeAnalytics(d.Roster.All(), d.Bookmarks.Count(), d.Now()))
	}
}
