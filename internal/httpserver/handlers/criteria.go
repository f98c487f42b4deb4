package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "staffdash_session"
)

type criteriaResponse struct {
	SearchTerm  string   `json:"searchTerm"`
	Departments []string `json:"departments"`
	Ratings     []int    `json:"ratings"`
}

// parseCriteria reads q, department and rating. Repeated parameters and
// comma separated values are both accepted. Unknown departments and out of
// range ratings are kept: they match nothing. Non-numeric ratings are ignored.
func parseCriteria(q url.Values) domain.FilterCriteria {
	c := domain.FilterCriteria{
		SearchTerm:  q.Get("q"),
		Departments: splitValues(q["department"]),
	}
	for _, raw := range splitValues(q["rating"]) {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Ratings = append(c.Ratings, n)
		}
	}
	return c
}

func splitValues(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func toCriteriaResponse(c domain.FilterCriteria) criteriaResponse {
	out := criteriaResponse{
		SearchTerm:  c.SearchTerm,
		Departments: c.Departments,
		Ratings:     c.Ratings,
	}
	if out.Departments == nil {
		out.Departments = []string{}
	}
	if out.Ratings == nil {
		out.Ratings = []int{}
	}
	return out
}

// sessionID identifies the dashboard view a filter request belongs to. A new
// id is issued as a cookie when the client sent none.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if id := r.Header.Get(sessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(sessionHeader, id)
	return id
}
