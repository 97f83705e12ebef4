package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterHealthRoutes creates the health check endpoints. The planner has
// no backing services, so readiness mirrors liveness.
func RegisterHealthRoutes() func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})
	}
}
