// Package api is the HTTP client for the CampusConnect backend. Every
// outbound call carries the current bearer token, and an expired token is
// recovered transparently through the refresh endpoint, at most once per
// logical request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// SessionSource is the authentication state the client reads tokens from
// and writes refreshed tokens back to. Injected rather than global so the
// refresh protocol is testable in isolation.
type SessionSource interface {
	AccessToken() string
	RefreshToken() string
	SetToken(accessToken string) error
	Logout() error
}

// Client performs authenticated JSON calls against the backend.
type Client struct {
	baseURL   string
	http      *http.Client
	session   SessionSource
	log       *slog.Logger
	onExpired func()

	// refreshMu serializes token refresh so concurrent 401s coalesce on a
	// single refresh call instead of each hitting the endpoint.
	refreshMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the diagnostic logger. Request bodies are never logged;
// they can carry credentials.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithExpiredHandler sets the hook invoked when the session is cleared
// after an unrecoverable refresh failure. The CLI uses it to tell the user
// to log in again.
func WithExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New creates a Client for the given base URL and session.
func New(baseURL string, session SessionSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isAuthPath reports whether path belongs to the endpoints that must never
// trigger the refresh protocol. A failed login looping into refresh would
// never terminate.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/login") ||
		strings.HasPrefix(path, "/auth/register") ||
		strings.HasPrefix(path, "/auth/refresh")
}

// do performs one logical request: dispatch with the current bearer token,
// and on a 401 from a non-auth endpoint refresh the token and re-dispatch
// exactly once. The caller sees either the final success body or a single
// terminal error; intermediate failures are invisible.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: marshal %s %s: %w", method, path, err)
		}
	}

	token := c.session.AccessToken()
	status, data, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		return nil, err
	}
	if status < http.StatusMultipleChoices {
		return data, nil
	}
	if isAuthPath(path) || status != http.StatusUnauthorized {
		return nil, newAPIError(status, data)
	}

	// Expired access token. One refresh, one retry.
	origErr := newAPIError(status, data)
	newToken, err := c.refreshAccessToken(ctx, token)
	if err != nil {
		c.expireSession()
		return nil, origErr
	}

	status, data, err = c.send(ctx, method, path, query, payload, newToken)
	if err != nil {
		return nil, err
	}
	if status < http.StatusMultipleChoices {
		return data, nil
	}
	// A second 401 propagates as-is; refreshing again could loop forever.
	return nil, newAPIError(status, data)
}

// send performs a single HTTP round trip and returns status and body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("api: read %s %s: %w", method, path, err)
	}
	c.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

// refreshAccessToken exchanges the refresh token for a new access token and
// stores it in the session so all in-flight requests observe it. Callers
// that lost the race to the lock reuse the token the winner stored.
func (c *Client) refreshAccessToken(ctx context.Context, usedToken string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if cur := c.session.AccessToken(); cur != "" && cur != usedToken {
		return cur, nil
	}
	refresh := c.session.RefreshToken()
	if refresh == "" {
		return "", errNoRefreshToken
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refresh})
	if err != nil {
		return "", fmt.Errorf("api: marshal refresh: %w", err)
	}
	status, data, err := c.send(ctx, http.MethodPost, "/auth/refresh", nil, payload, "")
	if err != nil {
		return "", err
	}
	if status >= http.StatusMultipleChoices {
		return "", newAPIError(status, data)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Token == "" {
		return "", fmt.Errorf("api: refresh: malformed response")
	}
	if err := c.session.SetToken(out.Token); err != nil {
		return "", err
	}
	c.log.Info("access token refreshed")
	return out.Token, nil
}

// expireSession clears the session after an unrecoverable refresh failure
// and notifies the UI layer.
func (c *Client) expireSession() {
	if err := c.session.Logout(); err != nil {
		c.log.Warn("clear session", "error", err)
	}
	if c.onExpired != nil {
		c.onExpired()
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	data, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	data, err := c.do(ctx, http.MethodPatch, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values) error {
	_, err := c.do(ctx, http.MethodDelete, path, query, nil)
	return err
}

// download fetches a binary export and writes it to dest.
func (c *Client) download(ctx context.Context, path string, query url.Values, dest string) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("api: save %s: %w", dest, err)
	}
	return nil
}

// decodeInto unmarshals a response body, ignoring it when the caller does
// not want one.
func decodeInto(path string, data []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", path, err)
	}
	return nil
}
