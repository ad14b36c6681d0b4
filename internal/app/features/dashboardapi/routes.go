// internal/app/features/dashboardapi/routes.go
package dashboardapi

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the JSON endpoints, typically under "/api/v1/dashboard".
// Session loading happens in the parent router; handlers answer 401 JSON
// themselves rather than redirecting.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/properties", h.ServeProperties)
	r.Get("/summary", h.ServeSummary)
	r.Get("/monthly", h.ServeMonthly)
	return r
}
