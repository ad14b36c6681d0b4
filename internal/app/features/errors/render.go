// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderForbidden shows the access error page with msg. If backURL is empty
// the page links back to a safe referring page.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Your account is not linked to an organisation."
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Access denied", "/"),
		Heading: "Access denied",
		Message: msg,
	}
	if backURL != "" {
		data.BackURL = backURL
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_page", data)
}
