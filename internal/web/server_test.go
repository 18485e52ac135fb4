package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/regions/internal/config"
	"github.com/JonMunkholm/regions/internal/core"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			RequestTimeout: 5 * time.Second,
		},
		Store: config.StoreConfig{BulkDeleteConcurrency: 4},
		Session: config.SessionConfig{
			CookieName:    "regions_session",
			IdleTimeout:   30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

func testRegions() []core.Region {
	return []core.Region{
		{ID: "r1", Name: "Western Europe", Countries: []string{"France", "Germany"}, IsActive: true},
		{ID: "r2", Name: "East Asia", Countries: []string{"Japan", "Korea"}, IsActive: true},
		{ID: "r3", Name: "Eastern Africa", Countries: []string{"Kenya"}, IsActive: false},
	}
}

// newTestServer returns a server over a fresh store seeded with testRegions.
func newTestServer(t *testing.T, cfg *config.Config) (*Server, *core.MemoryStore) {
	t.Helper()

	store, err := core.NewMemoryStore(testRegions())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	if cfg == nil {
		cfg = testConfig()
	}
	s := NewServer(core.NewService(store, cfg.Store.BulkDeleteConcurrency), cfg)
	t.Cleanup(func() {
		if err := s.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})
	return s, store
}

// browser is an HTTP client with a cookie jar against a live test server.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, s *Server) *browser {
	t.Helper()

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &browser{t: t, base: ts.URL, client: &http.Client{Jar: jar}}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	if err != nil {
		b.t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(b.t, resp)
}

func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	if err != nil {
		b.t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(b.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name      string
		enableCSP bool
		wantCSP   bool
	}{
		{"csp enabled", true, true},
		{"csp disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Security.EnableCSP = tt.enableCSP
			s, _ := newTestServer(t, cfg)

			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q", got)
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q", got)
			}
			if got := rec.Header().Get("Content-Security-Policy") != ""; got != tt.wantCSP {
				t.Errorf("CSP present = %v, want %v", got, tt.wantCSP)
			}
		})
	}
}

func TestStaticCSS(t *testing.T) {
	s, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".results-table") {
		t.Error("stylesheet content missing")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}
	s, _ := newTestServer(t, cfg)

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
		req.RemoteAddr = ip + ":4321"
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := do("10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After missing")
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "RATE001" {
		t.Errorf("code = %q, want RATE001", body.Code)
	}

	if rec := do("10.0.0.2"); rec.Code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)
	defer rl.stop()

	now := time.Now()
	rl.now = func() time.Time { return now }

	if !rl.allow("a") {
		t.Fatal("first request rejected")
	}
	if rl.allow("a") {
		t.Fatal("second request in window allowed")
	}

	now = now.Add(time.Minute + time.Second)
	if !rl.allow("a") {
		t.Error("request after window rejected")
	}

	now = now.Add(3 * time.Minute)
	rl.evictStale()
	rl.mu.Lock()
	n := len(rl.visitors)
	rl.mu.Unlock()
	if n != 0 {
		t.Errorf("visitors after eviction = %d, want 0", n)
	}

	rl.stop() // idempotent
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:80", "2001:db8::1"},
		{"192.0.2.7", "192.0.2.7"},
		{"2001:db8::2", "2001:db8::2"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
