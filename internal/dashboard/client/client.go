// Package client talks to the portfolio HTTP API on behalf of the admin
// dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds every request made by the dashboard.
const DefaultTimeout = 10 * time.Second

const degradedHeader = "X-Store-Degraded"

var (
	// ErrNetwork wraps transport failures, including timeouts.
	ErrNetwork = errors.New("network error")
	// ErrDegraded is returned when the API served a list without reaching the store.
	ErrDegraded = errors.New("store unavailable")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error %d", e.Status)
	}
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges admin credentials for a session token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	out, err := decodeResponse[struct {
		Token string `json:"token"`
	}](resp)
	if err != nil {
		return "", err
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// Stats is the dashboard home summary.
type Stats struct {
	Projects int  `json:"projects"`
	Messages int  `json:"messages"`
	Unread   int  `json:"unread"`
	Degraded bool `json:"degraded"`
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/api/dashboard/stats", nil)
	if err != nil {
		return Stats{}, err
	}
	return decodeResponse[Stats](resp)
}

// --- HTTP helpers ---

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	return resp, nil
}

func decodeResponse[T any](resp *http.Response) (T, error) {
	defer resp.Body.Close()
	var zero T

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = apiErr.Message
		}
		return zero, &APIError{Status: resp.StatusCode, Message: msg}
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// decodeList is decodeResponse for list endpoints; a degraded answer is an error.
func decodeList[T any](resp *http.Response) ([]T, error) {
	if reason := resp.Header.Get(degradedHeader); reason != "" {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrDegraded, reason)
	}
	items, err := decodeResponse[[]T](resp)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// expectOK drains a write response and reports any API error.
func expectOK(resp *http.Response) error {
	_, err := decodeResponse[map[string]any](resp)
	return err
}
