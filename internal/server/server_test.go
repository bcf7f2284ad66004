package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/store"
)

func newTestServer(t *testing.T) (*Server, *service.AuthService) {
	t.Helper()

	st, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	auth := service.NewAuthService(st, "server-test-secret", time.Hour, "cmps369", "rcnj")
	if err := auth.EnsureSeedAccount(context.Background()); err != nil {
		t.Fatalf("EnsureSeedAccount: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := DefaultConfig()
	cfg.LoginRateLimit = 3 // small so the limiter is testable

	srv, err := New(cfg, st, auth, logger)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return srv, auth
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}
}

func TestIndexServes(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestMutatingRoutesAreGated(t *testing.T) {
	srv, _ := newTestServer(t)

	routes := []struct{ method, path string }{
		{"GET", "/create"},
		{"POST", "/create"},
		{"GET", "/1/edit"},
		{"POST", "/1/edit"},
		{"GET", "/1/delete"},
		{"POST", "/1/delete"},
		{"POST", "/1/spam"},
	}
	for _, rt := range routes {
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))

		if rr.Code != http.StatusSeeOther {
			t.Errorf("%s %s: expected 303, got %d", rt.method, rt.path, rr.Code)
			continue
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s %s: expected redirect to /login, got %q", rt.method, rt.path, loc)
		}
	}
}

func TestLoginEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{"username": {"cmps369"}, "password": {"rcnj"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}

	var session *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "rolodex_session" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}

	// The session unlocks the gated create form.
	req = httptest.NewRequest("GET", "/create", nil)
	req.AddCookie(session)
	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("authenticated GET /create: expected 200, got %d", rr.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	srv, _ := newTestServer(t)

	form := url.Values{"username": {"ghost"}, "password": {"bad"}}

	limited := false
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "198.51.100.7:1234"
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, req)

		if rr.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected 429 after exceeding the login rate limit")
	}
}

func TestRequestIDOnEveryResponse(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on response")
	}
}
