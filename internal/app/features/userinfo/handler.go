// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/auth"
)

// Handler reports who the current session belongs to.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

type identity struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Name            string `json:"name"`
	LoginID         string `json:"login_id"`
	TenantID        string `json:"tenant_id"`
}

// ServeUserInfo returns the session identity. Clients use tenant_id to label
// the dashboard; the server never reads it back from them.
//
//	{ "isAuthenticated": bool, "name": "...", "login_id": "...", "tenant_id": "..." }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(identity{})
		return
	}

	_ = json.NewEncoder(w).Encode(identity{
		IsAuthenticated: true,
		Name:            user.Name,
		LoginID:         user.LoginID,
		TenantID:        user.TenantID,
	})
}
