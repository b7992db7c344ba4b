// Package api is the typed client for the remote commerce backend. The
// dashboard is purely a presentation layer: every mutation goes through
// these calls and the backend's answer is authoritative.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned for any 401 response. Handlers translate it
// into a redirect to /login.
var ErrUnauthorized = errors.New("api: unauthorized")

// SessionCookieName is the backend's session cookie.
const SessionCookieName = "session"

type Client struct {
	base    string
	root    string // origin without the /api prefix, for the bare /logout route
	http    *http.Client
	session string // remote session cookie value, empty before login
}

func NewClient(base string) *Client {
	base = strings.TrimSuffix(base, "/")
	return &Client{
		base: base,
		root: strings.TrimSuffix(base, "/api"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithSession returns a copy bound to one operator's remote session. The
// receiver is unchanged, so a single Client is shared across requests.
func (c *Client) WithSession(session string) *Client {
	copied := *c
	copied.session = session
	return &copied
}

func (c *Client) do(ctx context.Context, method, path string, contentType string, body io.Reader, out interface{}) error {
	return c.doURL(ctx, method, c.base+path, contentType, body, out)
}

func (c *Client) doURL(ctx context.Context, method, url string, contentType string, body io.Reader, out interface{}) error {
	path := strings.TrimPrefix(url, c.root)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.session})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("api: %s %s: %s", method, path, errorMessage(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s: %w", path, err)
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out interface{}) error {
	encoded, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("api: encode %s: %w", path, err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(encoded), out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}

func newJSONRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("api: encode %s: %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("api: build %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// errorMessage surfaces the backend's error field when present; failures are
// otherwise opaque.
func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return resp.Status
}
