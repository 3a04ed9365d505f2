/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. CORS:       Cross-origin requests for frontend
  3. httplog:    Structured request logging on slog (ECS schema)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. Heartbeat:  Liveness probe on /healthz

ROUTE GROUPS:
  /api/employees/*   Employee management and balances
  /api/requests/*    Request lifecycle (approve/reject/delete)
  /api/config        Configuration
  /api/import/*      Bulk import
  /api/year-close/*  Annual close
  /api/holidays      Legal calendar
  /api/dashboard     Aggregate counters

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Get("/{id}/balance", h.GetBalance)
			r.Post("/{id}/requests", h.SubmitRequest)
		})

		// Request lifecycle routes
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.ListRequests)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
			r.Delete("/{id}", h.DeleteRequest)
		})

		// Configuration routes
		r.Get("/config", h.GetConfig)
		r.Put("/config", h.UpdateConfig)

		// Bulk import routes
		r.Route("/import", func(r chi.Router) {
			r.Post("/", h.ImportData)
			r.Post("/validate", h.ValidateImportPayload)
		})

		// Year-close routes
		r.Route("/year-close", func(r chi.Router) {
			r.Get("/status", h.YearCloseStatus)
			r.Post("/run", h.RunYearClose)
		})

		r.Get("/holidays", h.ListHolidays)
		r.Get("/dashboard", h.Dashboard)
	})

	return r
}
