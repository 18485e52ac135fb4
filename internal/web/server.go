// Package web provides the HTTP server and handlers for the region console.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JonMunkholm/regions/internal/config"
	"github.com/JonMunkholm/regions/internal/console"
	webmw "github.com/JonMunkholm/regions/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

const cspPolicy = "default-src 'self'; script-src 'self'; style-src 'self'; img-src 'self' data:; font-src 'self'; form-action 'self'; frame-ancestors 'none'"

// Server is the HTTP server for the region console.
type Server struct {
	service  console.RegionService
	cfg      *config.Config
	router   *chi.Mux
	server   *http.Server
	sessions *sessionRegistry
	limiter  *rateLimiter
}

// NewServer creates a new Server over service. Background workers start
// immediately and stop in Shutdown.
func NewServer(service console.RegionService, cfg *config.Config) *Server {
	s := &Server{
		service:  service,
		cfg:      cfg,
		router:   chi.NewRouter(),
		sessions: newSessionRegistry(service, cfg.Session.IdleTimeout, cfg.Session.SweepInterval),
	}
	if cfg.Rate.Enabled {
		s.limiter = newRateLimiter(cfg.Rate.RequestsPerMinute, time.Minute)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(s.securityHeaders)

	if s.limiter != nil {
		s.router.Use(s.limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Get("/healthz", s.handleHealth)

	// Console
	s.router.Get("/", s.handleConsole)
	s.router.Post("/search", s.handleSearch)
	s.router.Post("/select/{id}", s.handleToggle)
	s.router.Post("/select-all", s.handleToggleAll)
	s.router.Get("/regions/new", s.handleNewForm)
	s.router.Get("/regions/{id}", s.handleDetail)
	s.router.Get("/regions/{id}/edit", s.handleEditForm)
	s.router.Post("/regions", s.handleSubmitForm)
	s.router.Post("/regions/{id}/delete", s.handleDeleteOne)
	s.router.Post("/delete-selected", s.handleDeleteSelected)
	s.router.Post("/close", s.handleClose)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/regions", s.handleAPIList)
		r.Post("/regions", s.handleAPICreate)
		r.Post("/regions/bulk-delete", s.handleAPIBulkDelete)
		r.Get("/regions/{id}", s.handleAPIGet)
		r.Put("/regions/{id}", s.handleAPIUpdate)
		r.Delete("/regions/{id}", s.handleAPIDelete)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	srv := s.cfg.Server
	s.server = &http.Server{
		Addr:         srv.Addr(),
		Handler:      s.router,
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
		IdleTimeout:  srv.IdleTimeout,
	}

	slog.Info("starting server", "addr", srv.Addr())
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.stop()
	}
	s.sessions.Close()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if s.cfg.Security.EnableCSP {
			h.Set("Content-Security-Policy", cspPolicy)
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// clientIP returns the request's address without the port.
// TrustedRealIP has already rewritten RemoteAddr for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
