/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions. This
  is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/days", func(r chi.Router) {
			r.Get("/", h.ListDays)
			r.Put("/{date}", h.SaveDay)
			r.Delete("/{date}", h.DeleteDay)
		})

		r.Route("/weeks", func(r chi.Router) {
			r.Get("/{date}", h.GetWeek)
			r.Get("/{date}/payments", h.ListWeekPayments)
			r.Post("/{date}/payments", h.RecordPayment)
		})

		r.Get("/history", h.GetHistory)

		r.Route("/export", func(r chi.Router) {
			r.Get("/work", h.ExportWork)
			r.Get("/payments", h.ExportPayments)
		})
	})

	return r
}
