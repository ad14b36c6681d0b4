// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard feature under whatever mount point
// the top-level router chooses (e.g., "/dashboard").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(authz.RequireTenant)

		pr.Get("/", h.ServeDashboard)
		pr.Get("/panel", h.ServePanel)
		pr.Post("/select", h.HandleSelect)
		pr.Post("/unmount", h.HandleUnmount)
	})

	return r
}
