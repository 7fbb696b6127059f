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
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/personnel/*      Roster and balance management
  /api/leave-types/*    Leave category management
  /api/time-off/*       Absence log
  /api/reports/*        Aggregated reporting
  /api/admin/*          Accruals, corrections, transfers, reset

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public and
  meant for a trusted facility network.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. The allowed
// CORS origins come from configuration so deployments can point other
// tools at the API.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Personnel routes
		r.Route("/personnel", func(r chi.Router) {
			r.Get("/", h.ListPersonnel)
			r.Post("/", h.CreatePerson)
			r.Get("/{id}", h.GetPerson)
			r.Put("/{id}", h.UpdatePerson)
			r.Delete("/{id}", h.DeactivatePerson)
			r.Post("/{id}/initialize", h.InitializePerson)
			r.Get("/{id}/balances", h.GetBalanceSummary)
		})

		// Leave type routes
		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.ListLeaveTypes)
			r.Post("/", h.CreateLeaveType)
			r.Put("/{id}", h.UpdateLeaveType)
			r.Delete("/{id}", h.DeactivateLeaveType)
		})

		// Time off routes
		r.Route("/time-off", func(r chi.Router) {
			r.Get("/", h.ListTimeOff)
			r.Post("/", h.LogTimeOff)
			r.Put("/{id}", h.EditTimeOff)
			r.Delete("/{id}", h.DeleteTimeOff)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/time-off", h.GetTimeOffSummary)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/accruals", h.AddAccrual)
			r.Post("/balances", h.SetBalance)
			r.Post("/transfers", h.TransferHours)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	// There is no frontend; the root answers with a small index so a
	// browser hitting the service sees where the API lives.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "simulation-ops-tracker",
			"endpoints": []string{
				"/api/personnel",
				"/api/leave-types",
				"/api/time-off",
				"/api/reports/time-off",
			},
		})
	})

	return r
}
