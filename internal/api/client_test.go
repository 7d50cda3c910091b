package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeSession is an in-memory SessionSource for exercising the refresh
// protocol without a database.
type fakeSession struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (f *fakeSession) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access
}

func (f *fakeSession) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

func (f *fakeSession) SetToken(t string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = t
	return nil
}

func (f *fakeSession) Logout() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = ""
	f.refresh = ""
	f.cleared = true
	return nil
}

func (f *fakeSession) wasCleared() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

// backend simulates the CampusConnect API for interceptor tests.
type backend struct {
	validToken   string
	refreshedTo  string
	refreshFails bool

	protectedHits atomic.Int64
	refreshHits   atomic.Int64
	refreshDelay  time.Duration
}

func (b *backend) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.refreshHits.Add(1)
		if b.refreshDelay > 0 {
			time.Sleep(b.refreshDelay)
		}
		if b.refreshFails {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"refresh token revoked"}`))
			return
		}
		w.Write([]byte(`{"token":"` + b.refreshedTo + `"}`))
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad credentials"}`))
	})
	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		b.protectedHits.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+b.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
			return
		}
		w.Write([]byte(`{"value":"ok"}`))
	})
	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, srv *httptest.Server, sess SessionSource, opts ...Option) *Client {
	t.Helper()
	return New(srv.URL, sess, opts...)
}

func TestDo_RefreshOnceAndRetry(t *testing.T) {
	b := &backend{validToken: "tok2", refreshedTo: "tok2"}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	c := newTestClient(t, srv, sess)

	var out struct {
		Value string `json:"value"`
	}
	if err := c.get(context.Background(), "/protected", nil, &out); err != nil {
		t.Fatalf("caller must observe only the final success, got error: %v", err)
	}
	if out.Value != "ok" {
		t.Errorf("Value = %q, want %q", out.Value, "ok")
	}
	if got := b.refreshHits.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if got := b.protectedHits.Load(); got != 2 {
		t.Errorf("protected calls = %d, want 2 (original + one retry)", got)
	}
	if sess.AccessToken() != "tok2" {
		t.Errorf("AccessToken = %q, want %q after refresh", sess.AccessToken(), "tok2")
	}
	if sess.RefreshToken() != "rtok1" {
		t.Errorf("RefreshToken = %q, want unchanged %q", sess.RefreshToken(), "rtok1")
	}
}

func TestDo_SecondUnauthorizedPropagatesWithoutSecondRefresh(t *testing.T) {
	// The refreshed token is still rejected by /protected.
	b := &backend{validToken: "never-valid", refreshedTo: "tok2"}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	c := newTestClient(t, srv, sess)

	err := c.get(context.Background(), "/protected", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401 to propagate, got %v", err)
	}
	if got := b.refreshHits.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
	if got := b.protectedHits.Load(); got != 2 {
		t.Errorf("protected calls = %d, want 2", got)
	}
}

func TestDo_AuthEndpointNeverRefreshes(t *testing.T) {
	b := &backend{validToken: "tok1", refreshedTo: "tok2"}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	c := newTestClient(t, srv, sess)

	_, err := c.Login(context.Background(), Credentials{Email: "a@b.edu", Password: "nope"})
	if err == nil {
		t.Fatal("expected login failure")
	}
	if got := ErrorMessage(err); got != "bad credentials" {
		t.Errorf("ErrorMessage = %q, want %q", got, "bad credentials")
	}
	if got := b.refreshHits.Load(); got != 0 {
		t.Errorf("refresh calls = %d, want 0 for auth endpoints", got)
	}
}

func TestDo_MissingRefreshTokenClearsSession(t *testing.T) {
	b := &backend{validToken: "tok2", refreshedTo: "tok2"}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: ""}
	expired := false
	c := newTestClient(t, srv, sess, WithExpiredHandler(func() { expired = true }))

	err := c.get(context.Background(), "/protected", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected original 401 to propagate, got %v", err)
	}
	if !sess.wasCleared() {
		t.Error("session should be cleared when no refresh token exists")
	}
	if !expired {
		t.Error("expired handler should run")
	}
	if got := b.refreshHits.Load(); got != 0 {
		t.Errorf("refresh calls = %d, want 0 without a refresh token", got)
	}
}

func TestDo_RefreshFailureClearsSessionAndPropagatesOriginal(t *testing.T) {
	b := &backend{validToken: "tok2", refreshedTo: "tok2", refreshFails: true}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	expired := false
	c := newTestClient(t, srv, sess, WithExpiredHandler(func() { expired = true }))

	err := c.get(context.Background(), "/protected", nil, nil)
	if !IsUnauthorized(err) {
		t.Fatalf("expected the original 401, got %v", err)
	}
	if got := ErrorMessage(err); got != "token expired" {
		t.Errorf("ErrorMessage = %q, want the original failure %q", got, "token expired")
	}
	if !sess.wasCleared() {
		t.Error("session should be cleared after refresh failure")
	}
	if !expired {
		t.Error("expired handler should run")
	}
}

func TestDo_ConcurrentFailuresCoalesceOnOneRefresh(t *testing.T) {
	b := &backend{validToken: "tok2", refreshedTo: "tok2", refreshDelay: 30 * time.Millisecond}
	srv := b.server()
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	c := newTestClient(t, srv, sess)

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.get(context.Background(), "/protected", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: unexpected error: %v", i, err)
		}
	}
	if got := b.refreshHits.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want 1 (single flight)", got)
	}
}

func TestDo_NonAuthFailureIsTerminal(t *testing.T) {
	hits := atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	}))
	defer srv.Close()

	sess := &fakeSession{access: "tok1", refresh: "rtok1"}
	c := newTestClient(t, srv, sess)

	err := c.get(context.Background(), "/chat/sessions", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ErrorMessage(err); got != "database unavailable" {
		t.Errorf("ErrorMessage = %q, want %q", got, "database unavailable")
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("hits = %d, want 1 (no automatic retry)", got)
	}
	if sess.wasCleared() {
		t.Error("non-auth failures must not clear the session")
	}
}

func TestDo_NoTokenSendsNoAuthorizationHeader(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &fakeSession{})
	if err := c.get(context.Background(), "/chat/suggestions", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotHeader != "" {
		t.Errorf("Authorization = %q, want empty when no token is stored", gotHeader)
	}
}

func TestNewAPIError_MessageExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 500, `{"message":"boom"}`, "boom"},
		{"error field", 400, `{"error":"bad request"}`, "bad request"},
		{"message wins over error", 400, `{"message":"a","error":"b"}`, "a"},
		{"non-JSON body", 502, `<html>bad gateway</html>`, genericErrorMessage},
		{"empty body", 503, ``, genericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(tt.status, []byte(tt.body))
			if e.Message != tt.want {
				t.Errorf("Message = %q, want %q", e.Message, tt.want)
			}
			if e.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
			if !strings.Contains(e.Error(), tt.want) {
				t.Errorf("Error() = %q should contain %q", e.Error(), tt.want)
			}
		})
	}
}

func TestProviderConfig_StringRedactsKey(t *testing.T) {
	cfg := ProviderConfig{APIKey: "gsk_secret_value", Model: "llama3-70b"}
	s := cfg.String()
	if strings.Contains(s, "gsk_secret_value") {
		t.Fatalf("String() leaked the API key: %s", s)
	}
	if !strings.Contains(s, "[redacted]") {
		t.Errorf("String() = %q, want a redaction marker", s)
	}
}
