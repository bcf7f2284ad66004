package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rolodex/rolodex/internal/handler"
	"github.com/rolodex/rolodex/internal/server/middleware"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/store"
	"github.com/rolodex/rolodex/internal/ui"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	// LoginRateLimit caps POSTs to the credential endpoints per IP per
	// minute.
	LoginRateLimit int
}

// DefaultConfig returns a Config with sensible defaults. Port 3000 matches
// the address the app has always listened on.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            3000,
		ShutdownTimeout: 30 * time.Second,
		LoginRateLimit:  20,
	}
}

// Server is the top-level HTTP server. It owns the Chi router, the store,
// and the auth service.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired, ready to
// listen. Template parsing happens here so a broken page fails startup.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, logger *slog.Logger) (*Server, error) {
	render, err := ui.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		logger:  logger,
	}
	s.setupRouter(render)
	return s, nil
}

func (s *Server) setupRouter(render *ui.Renderer) {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Session(s.authSvc))
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	contacts := handler.NewContactHandler(s.store, render, s.logger)
	auth := handler.NewAuthHandler(s.authSvc, render, s.logger)

	r.Get("/healthz", s.handleHealthz)

	// --- Auth pages (no session required) ---
	r.Get("/login", auth.LoginForm)
	r.Get("/signup", auth.SignupForm)
	r.Get("/logout", auth.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(s.cfg.LoginRateLimit))
		r.Post("/login", auth.Login)
		r.Post("/signup", auth.Signup)
	})

	// --- Public contact pages ---
	r.Get("/", contacts.List)
	r.Get("/{id}", contacts.View)

	// --- Session-gated mutating pages ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession())

		r.Get("/create", contacts.CreateForm)
		r.Post("/create", contacts.Create)
		r.Get("/{id}/edit", contacts.EditForm)
		r.Post("/{id}/edit", contacts.Edit)
		r.Get("/{id}/delete", contacts.DeleteForm)
		r.Post("/{id}/delete", contacts.Delete)
		r.Post("/{id}/spam", contacts.MarkSpam)
	})

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 when the database is
// reachable, 503 otherwise.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.store.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"degraded"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or
// SIGTERM is received, then drains in-flight requests before returning.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
