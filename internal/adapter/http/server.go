// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"weighttracker/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight   *app.WeightService
	history  *app.HistoryService
	creds    *app.CredentialStore
	settings *app.SettingsService
	origins  []string
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, hs *app.HistoryService, cs *app.CredentialStore, ss *app.SettingsService, opts ...Option) *Server {
	s := &Server{weight: ws, history: hs, creds: cs, settings: ss}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(withNoCache)

	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Route("/weight", func(r chi.Router) {
				r.Get("/", s.handleWeightList)
				r.Put("/today", s.handleWeightToday)
				r.Get("/history", s.handleWeightHistory)
				r.Put("/{index}", s.handleWeightUpdate)
				r.Delete("/{index}", s.handleWeightDelete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/dark-mode", s.handleDarkModeGet)
				r.Put("/dark-mode", s.handleDarkModePut)
				r.Get("/alerts", s.handleAlertsGet)
				r.Put("/alerts", s.handleAlertsPut)
			})
		})
	})

	return r
}
