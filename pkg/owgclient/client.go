// Package owgclient is a typed HTTP client for internal/statusapi, in
// the shape of the teacher's generated pkg/geoclient SDK (one method
// per endpoint, each returning the raw response alongside a decoded
// body). statusapi has no OpenAPI-client generator wired up in this
// module, so this client is hand-written against its fixed route set
// rather than generated; its method shapes mirror what pkg/geoclient's
// own tests expect from a generated client (New(baseURL), context-first
// methods, (resp, body, err) returns).
package owgclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openwebglobe/terrain/internal/catalog"
)

// Client talks to one owgterrain status API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client bound to baseURL (e.g. "http://localhost:8087").
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: http.DefaultClient}
}

// HealthBody mirrors statusapi.HealthBody.
type HealthBody struct {
	Status string `json:"status"`
}

// StatusBody mirrors statusapi.StatusBody.
type StatusBody struct {
	Layer          string `json:"layer"`
	OrphanedCount  int    `json:"orphaned_count"`
	TotalTiles     int64  `json:"total_tiles,omitempty"`
	CatalogEnabled bool   `json:"catalog_enabled"`
}

// QueueBody mirrors statusapi.QueueBody.
type QueueBody struct {
	Remaining int64 `json:"remaining"`
}

// CatalogBody mirrors statusapi.CatalogBody.
type CatalogBody struct {
	Tiles []catalog.TileRecord `json:"tiles"`
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*http.Response, HealthBody, error) {
	var body HealthBody
	resp, err := c.getJSON(ctx, "/health", &body)
	return resp, body, err
}

// Status calls GET /status.
func (c *Client) Status(ctx context.Context) (*http.Response, StatusBody, error) {
	var body StatusBody
	resp, err := c.getJSON(ctx, "/status", &body)
	return resp, body, err
}

// Queue calls GET /queue.
func (c *Client) Queue(ctx context.Context) (*http.Response, QueueBody, error) {
	var body QueueBody
	resp, err := c.getJSON(ctx, "/queue", &body)
	return resp, body, err
}

// CatalogTiles calls GET /catalog/{lod}.
func (c *Client) CatalogTiles(ctx context.Context, lod int) (*http.Response, CatalogBody, error) {
	var body CatalogBody
	resp, err := c.getJSON(ctx, fmt.Sprintf("/catalog/%d", lod), &body)
	return resp, body, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return resp, fmt.Errorf("owgclient: %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp, fmt.Errorf("owgclient: %s: decode response: %w", path, err)
	}
	return resp, nil
}
