// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/catalogue"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// SummaryService loads the revenue summary shown under the selector.
type SummaryService interface {
	Summary(ctx context.Context, tenantID, propertyID string) (models.RevenueSummary, error)
}

// SourceFor returns the property source a mount for the caller of r reads.
type SourceFor func(r *http.Request, tenantID string) propertypicker.Source

type Handler struct {
	Mounts  *propertypicker.Registry
	Source  SourceFor            // dynamic mode
	Static  *catalogue.Catalogue // static mode when non-nil
	Revenue SummaryService
	Log     *zap.Logger

	render  func(w http.ResponseWriter, r *http.Request, name string, data any)
	snippet func(w http.ResponseWriter, name string, data any)
}

// NewHandler creates a dashboard whose mounts fetch their list from source.
func NewHandler(mounts *propertypicker.Registry, source SourceFor, revenue SummaryService, logger *zap.Logger) *Handler {
	return &Handler{
		Mounts:  mounts,
		Source:  source,
		Revenue: revenue,
		Log:     logger,
		render: func(w http.ResponseWriter, r *http.Request, name string, data any) {
			templates.Render(w, r, name, data)
		},
		snippet: func(w http.ResponseWriter, name string, data any) {
			templates.RenderSnippet(w, name, data)
		},
	}
}

// NewStaticHandler creates a dashboard over the catalogue's fixed list. Mounts
// start ready with the catalogue default selected and never fetch.
func NewStaticHandler(mounts *propertypicker.Registry, cat *catalogue.Catalogue, revenue SummaryService, logger *zap.Logger) *Handler {
	h := NewHandler(mounts, nil, revenue, logger)
	h.Static = cat
	return h
}

func (h *Handler) mount(r *http.Request, tenantID string) propertypicker.Snapshot {
	if h.Static != nil {
		st := propertypicker.Static(h.Static.StaticProperties(), h.Static.DefaultID())
		return h.Mounts.MountReady(tenantID, st)
	}
	return h.Mounts.Mount(r.Context(), tenantID, h.Source(r, tenantID))
}
