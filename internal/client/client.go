// Package client is a small HTTP client for a running textgate server, used by
// the CLI subcommands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"textgate/pkg/types"
)

// Client talks to a textgate server.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the server at baseURL (for example http://127.0.0.1:5000).
// A zero timeout means no client-side limit.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// StatusError is returned when the server answers with a non-2xx status.
// Message carries the server's error string when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// Generate posts prompt to /generate and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var resp types.GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/generate", types.GenerateRequest{Prompt: &prompt}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("generate failed: %s", resp.Error)
	}
	return resp.Response, nil
}

// Health fetches /health.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	var resp types.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &resp)
	return resp, err
}

// Status fetches /status.
func (c *Client) Status(ctx context.Context) (types.StatusResponse, error) {
	var resp types.StatusResponse
	err := c.do(ctx, http.MethodGet, "/status", nil, &resp)
	return resp, err
}

// Reload posts to /reload_model. A failed reload is reported in the response,
// not as an error.
func (c *Client) Reload(ctx context.Context) (types.ReloadResponse, error) {
	var resp types.ReloadResponse
	err := c.do(ctx, http.MethodPost, "/reload_model", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(res.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var env types.GenerateResponse
		_ = json.Unmarshal(raw, &env)
		return &StatusError{Code: res.StatusCode, Message: env.Error}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
