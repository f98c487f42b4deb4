// Package dummyjson fetches users from a dummyjson-compatible HTTP API.
package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/staffdash/internal/domain"
	"github.com/MrSnakeDoc/staffdash/internal/sources"
)

// maxBody caps how much of a response is decoded.
const maxBody = 4 << 20

// Client talks to the users API rooted at baseURL (ex: https://dummyjson.com).
type Client struct {
	baseURL string
	limit   int
	http    *http.Client
}

// NewClient builds a client. limit is the page size for List; 0 lets the API
// pick its default.
func NewClient(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *Client) Name() string { return "dummyjson:" + c.baseURL }

// List fetches one page of users and annotates them, keeping API order.
func (c *Client) List(ctx context.Context) ([]domain.Employee, error) {
	url := c.baseURL + "/users"
	if c.limit > 0 {
		url += "?limit=" + strconv.Itoa(c.limit)
	}

	var page UserPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	employees := make([]domain.Employee, 0, len(page.Users))
	for _, u := range page.Users {
		employees = append(employees, domain.Annotate(u.person()))
	}
	return employees, nil
}

// Get fetches a single user. An unknown id yields sources.ErrNotFound.
func (c *Client) Get(ctx context.Context, id int) (domain.Employee, error) {
	var u User
	if err := c.getJSON(ctx, c.baseURL+"/users/"+strconv.Itoa(id), &u); err != nil {
		return domain.Employee{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return domain.Annotate(u.person()), nil
}

// Ping sends a HEAD request for a one-user page and reports transport or TLS
// failures. Any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/users?limit=1", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("users API unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return sources.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
