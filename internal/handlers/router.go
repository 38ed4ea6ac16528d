package handlers

import (
	"net/http"

	"parking-discount/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты HTTP сервера.
func NewRouter(allocationHandler *AllocationHandler, healthHandler *HealthHandler, allowedOrigins []string, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(corsMiddleware(allowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoints
	r.Get("/health/liveness", healthHandler.Liveness)
	r.Get("/health/readiness", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", allocationHandler.ListStores)
			r.Get("/{storeID}", allocationHandler.GetStore)
		})
		r.Post("/allocations", allocationHandler.CreatePlan)
	})

	return r
}
