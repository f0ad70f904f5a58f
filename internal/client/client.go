// Package client talks to the guest registry over HTTP. It is the transport
// collaborator used by the navigator: every call either returns the server's
// authoritative result or an error, never a partially applied change.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/storage"
	"wedding-guestlist/internal/summary"
)

const defaultTimeout = 10 * time.Second

// Client issues guest registry calls against the API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs an API client for baseURL. A non-positive timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// TransportError wraps a failure to reach the server or read its reply.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is a non-2xx reply. 404 unwraps to storage.ErrGuestNotFound and
// 400 to a *models.ValidationError, so callers can test with errors.Is/As
// without caring about HTTP.
type StatusError struct {
	Op      string
	Code    int
	Message string
	Field   string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return storage.ErrGuestNotFound
	case http.StatusBadRequest:
		return &models.ValidationError{Field: e.Field, Message: e.Message}
	default:
		return nil
	}
}

// FetchGuests retrieves the current authoritative collection.
func (c *Client) FetchGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := c.do(ctx, "fetch guests", http.MethodGet, []string{"api", "guests"}, nil, http.StatusOK, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// CreateGuest asks the registry to add a guest and returns the stored record.
func (c *Client) CreateGuest(ctx context.Context, in models.GuestInput) (models.Guest, error) {
	var g models.Guest
	err := c.do(ctx, "create guest", http.MethodPost, []string{"api", "guests"}, in, http.StatusCreated, &g)
	return g, err
}

// ReplaceGuest replaces the mutable fields of guest id.
func (c *Client) ReplaceGuest(ctx context.Context, id string, in models.GuestInput) (models.Guest, error) {
	var g models.Guest
	err := c.do(ctx, "replace guest", http.MethodPut, []string{"api", "guests", id}, in, http.StatusOK, &g)
	return g, err
}

// DeleteGuest removes guest id. Deleting an unknown id succeeds.
func (c *Client) DeleteGuest(ctx context.Context, id string) error {
	return c.do(ctx, "delete guest", http.MethodDelete, []string{"api", "guests", id}, nil, http.StatusOK, nil)
}

// FetchSummary retrieves the server-side headcount summary.
func (c *Client) FetchSummary(ctx context.Context) (summary.Summary, error) {
	var s summary.Summary
	err := c.do(ctx, "fetch summary", http.MethodGet, []string{"api", "guests", "summary"}, nil, http.StatusOK, &s)
	return s, err
}

func (c *Client) do(ctx context.Context, op, method string, path []string, body any, want int, out any) error {
	escaped := make([]string, len(path))
	for i, p := range path {
		escaped[i] = url.PathEscape(p)
	}
	endpoint, err := url.JoinPath(c.baseURL, escaped...)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return statusError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	se := &StatusError{Op: op, Code: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		se.Message = body.Error
		se.Field = body.Field
	} else {
		se.Message = strings.TrimSpace(string(data))
	}
	return se
}

// IsTransport reports whether err came from the network rather than the server.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
