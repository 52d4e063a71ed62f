// Package apiclient contains thin HTTP clients for the backend catalog API.
// The admin service never owns catalog data; it relays requests downstream
// with the caller's bearer token attached.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// TokenFunc supplies the bearer token forwarded on each request, typically
// the session token of the signed-in administrator.
type TokenFunc func(ctx context.Context) string

// Client is the shared base for all backend API clients.
type Client struct {
	http    *http.Client
	baseURL string
	token   TokenFunc
}

// New creates a base client for the backend API at baseURL. token may be nil
// when requests need no authentication.
func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// getJSON performs a GET and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

// send performs a bodyless or body-carrying request and reports whether the
// backend accepted it. Response bodies are drained and discarded.
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.token == nil {
		return
	}
	if t := c.token(ctx); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}
