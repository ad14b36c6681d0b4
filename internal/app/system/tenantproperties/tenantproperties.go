// Package tenantproperties resolves the property list a tenant's dashboard
// offers: the property store first, then the catalogue's per-tenant list.
package tenantproperties

import (
	"context"

	"github.com/dalemusser/revenuedash/internal/app/system/catalogue"
	"github.com/dalemusser/revenuedash/internal/app/system/metrics"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"go.uber.org/zap"
)

// Lister is the part of the property store the service reads.
type Lister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.Property, error)
}

// Service lists a tenant's properties. Store may be nil.
type Service struct {
	Store    Lister
	Fallback *catalogue.Catalogue
	Log      *zap.Logger
}

// New creates a Service.
func New(store Lister, fallback *catalogue.Catalogue, logger *zap.Logger) *Service {
	return &Service{Store: store, Fallback: fallback, Log: logger}
}

// List returns tenantID's properties in store order. When the store fails or
// holds nothing for the tenant the catalogue list is returned; a tenant the
// catalogue does not know either gets an empty list. The result is never nil
// and blank names are replaced by the property id.
func (s *Service) List(ctx context.Context, tenantID string) []models.Property {
	if s.Store != nil {
		ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()

		list, err := s.Store.ListByTenant(ctx, tenantID)
		switch {
		case err != nil:
			s.Log.Warn("property store unavailable, using catalogue",
				zap.String("tenant_id", tenantID), zap.Error(err))
		case len(list) > 0:
			return named(list)
		}
	}

	metrics.PropertyFallbacks.Inc()
	if s.Fallback == nil {
		return []models.Property{}
	}
	return named(s.Fallback.TenantProperties(tenantID))
}

// Source binds the service to one tenant for a dashboard mount.
func (s *Service) Source(tenantID string) propertypicker.Source {
	return propertypicker.SourceFunc(func(ctx context.Context) ([]models.Property, error) {
		return s.List(ctx, tenantID), nil
	})
}

func named(list []models.Property) []models.Property {
	out := make([]models.Property, len(list))
	for i, p := range list {
		p.Name = p.DisplayName()
		out[i] = p
	}
	return out
}
