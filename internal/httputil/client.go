// Package httputil provides the HTTP client used for third-party API calls.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// StatusError reports a non-2xx response. Actions usually downgrade it to an
// error envelope: the dispatch succeeded, the downstream did not.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, truncate(e.Body, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Client wraps an HTTP client for JSON APIs.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given timeout (default 15s).
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON performs a GET and parses the response body.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string) (gjson.Result, error) {
	return c.do(ctx, http.MethodGet, url, nil, headers)
}

// PostJSON performs a POST with a JSON body and parses the response.
func (c *Client) PostJSON(ctx context.Context, url string, body any, headers map[string]string) (gjson.Result, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, http.MethodPost, url, reader, headers)
}

// DeleteJSON performs a DELETE and parses the response.
func (c *Client) DeleteJSON(ctx context.Context, url string, headers map[string]string) (gjson.Result, error) {
	return c.do(ctx, http.MethodDelete, url, nil, headers)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}
	return gjson.ParseBytes(respBody), nil
}
