// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Heading string
	Message string
}

// Handler is the errors feature handler. It only renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders the "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "", "")
}

// NotFound renders the "page not found" page; the router uses it for unknown
// paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found", "/"),
		Heading: "Page not found",
		Message: "The page you asked for does not exist.",
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}
