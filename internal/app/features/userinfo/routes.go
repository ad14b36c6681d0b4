// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// MountRoutes registers GET /api/v1/me on the supplied router.
// The handler checks the session itself via auth.CurrentUser.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/api/v1/me", h.ServeUserInfo)
}
