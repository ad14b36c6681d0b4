// internal/app/features/dashboard/page.go
package dashboard

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type pageData struct {
	viewdata.BaseVM
	Panel panelData
}

// panelData drives revenue_dashboard_panel. Pending panels ask the server for
// their resolved state as soon as they are swapped in.
type panelData struct {
	MountID   string
	View      propertypicker.View
	Pending   bool
	Summary   *summaryVM
	CSRFField template.HTML
}

type summaryVM struct {
	PropertyID        string
	Total             string
	Currency          string
	ReservationsCount int64
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDashboard mounts a dashboard for the caller's tenant and renders the
// page shell. In dynamic mode the panel starts in its loading state.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	snap := h.mount(r, tenantID)

	data := pageData{
		BaseVM: viewdata.NewBaseVM(r, "Revenue", "/"),
		Panel:  h.panel(r, tenantID, snap),
	}

	h.Log.Debug("revenue dashboard served",
		zap.String("tenant_id", tenantID),
		zap.String("mount_id", snap.ID),
		zap.String("phase", snap.State.Phase.String()))

	h.render(w, r, "revenue_dashboard", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /dashboard/panel?mount=                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePanel waits for the mount's single fetch and renders the resolved
// selector. It never issues a fetch of its own.
func (h *Handler) ServePanel(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id := query.Get(r, "mount")
	snap, err := h.Mounts.Await(r.Context(), tenantID, id)
	switch {
	case errors.Is(err, propertypicker.ErrMountNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		// Client went away while the list was still loading.
		h.Log.Debug("panel request ended before list resolved",
			zap.String("mount_id", id), zap.Error(err))
		return
	}

	h.snippet(w, "revenue_dashboard_panel", h.panel(r, tenantID, snap))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/select                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSelect changes the mount's selection and re-renders the panel with
// the summary for the new property. Ids the mount does not offer are ignored.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id := strings.TrimSpace(r.FormValue("mount"))
	propertyID := strings.TrimSpace(r.FormValue("property_id"))

	snap, err := h.Mounts.Select(tenantID, id, propertyID)
	if errors.Is(err, propertypicker.ErrMountNotFound) {
		http.NotFound(w, r)
		return
	}
	if snap.State.Selected != propertyID {
		h.Log.Debug("ignored selection",
			zap.String("mount_id", id),
			zap.String("property_id", propertyID),
			zap.String("phase", snap.State.Phase.String()))
	}

	h.snippet(w, "revenue_dashboard_panel", h.panel(r, tenantID, snap))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /dashboard/unmount                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleUnmount tears a mount down. It is sent as a beacon when the page goes
// away, so it always answers 204.
func (h *Handler) HandleUnmount(w http.ResponseWriter, r *http.Request) {
	if tenantID, ok := authz.Tenant(r); ok {
		id := strings.TrimSpace(r.FormValue("mount"))
		if err := h.Mounts.Unmount(tenantID, id); err != nil {
			h.Log.Debug("unmount of unknown mount", zap.String("mount_id", id))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) panel(r *http.Request, tenantID string, snap propertypicker.Snapshot) panelData {
	view := snap.State.View()
	p := panelData{
		MountID:   snap.ID,
		View:      view,
		Pending:   snap.State.Phase == propertypicker.PhaseLoading,
		CSRFField: csrf.TemplateField(r),
	}
	if view.ShowSummary() {
		p.Summary = h.summary(r.Context(), tenantID, view.SummaryPropertyID)
	}
	return p
}

func (h *Handler) summary(ctx context.Context, tenantID, propertyID string) *summaryVM {
	sum, err := h.Revenue.Summary(ctx, tenantID, propertyID)
	if err != nil {
		h.Log.Warn("revenue summary failed",
			zap.String("tenant_id", tenantID),
			zap.String("property_id", propertyID),
			zap.Error(err))
		return nil
	}
	return &summaryVM{
		PropertyID:        sum.PropertyID,
		Total:             sum.Total.StringFixed(2),
		Currency:          sum.Currency,
		ReservationsCount: sum.ReservationsCount,
	}
}
