// Package revenue computes per-property revenue summaries for a tenant.
package revenue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationstore "github.com/dalemusser/revenuedash/internal/app/store/reservations"
	"github.com/dalemusser/revenuedash/internal/app/system/catalogue"
	"github.com/dalemusser/revenuedash/internal/app/system/metrics"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoProperty is returned when no property id was given.
var ErrNoProperty = errors.New("property id is required")

// Totaler is the part of the reservation store the service reads.
type Totaler interface {
	Totals(ctx context.Context, tenantID, propertyID string) (reservationstore.Totals, error)
	TotalsBetween(ctx context.Context, tenantID, propertyID string, from, to time.Time) (reservationstore.Totals, error)
}

// Service answers revenue questions. Store may be nil, in which case every
// summary comes from the catalogue's demo figures.
type Service struct {
	Store    Totaler
	Fallback *catalogue.Catalogue
	Log      *zap.Logger
}

// New creates a Service.
func New(store Totaler, fallback *catalogue.Catalogue, logger *zap.Logger) *Service {
	return &Service{Store: store, Fallback: fallback, Log: logger}
}

// Round rounds an amount to cents, half to even.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Summary returns the revenue summary for one property of tenantID. A store
// failure is not returned; the catalogue's figure for the pair (or zero) is
// served instead and the failure is logged.
func (s *Service) Summary(ctx context.Context, tenantID, propertyID string) (models.RevenueSummary, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return models.RevenueSummary{}, ErrNoProperty
	}

	sum := models.RevenueSummary{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Currency:   models.DefaultCurrency,
	}

	if s.Store != nil {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), s.Log, "revenue summary")
		defer cancel()

		t, err := s.Store.Totals(ctx, tenantID, propertyID)
		if err == nil {
			sum.Total = Round(t.Amount)
			sum.ReservationsCount = t.Count
			return sum, nil
		}
		s.Log.Warn("revenue store unavailable, serving fallback figures",
			zap.String("tenant_id", tenantID),
			zap.String("property_id", propertyID),
			zap.Error(err))
	}

	metrics.RevenueFallbacks.Inc()
	total, count := decimal.Zero, int64(0)
	if s.Fallback != nil {
		total, count, _ = s.Fallback.RevenueFigure(tenantID, propertyID)
	}
	sum.Total = Round(total)
	sum.ReservationsCount = count
	return sum, nil
}

// MonthWindow returns the half-open UTC range [from, to) covering month of year.
func MonthWindow(year int, month time.Month) (from, to time.Time, err error) {
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}

// MonthlyRevenue sums reservations checking in during the given month.
// Unlike Summary there is no fallback; store errors are returned.
func (s *Service) MonthlyRevenue(ctx context.Context, tenantID, propertyID string, year int, month time.Month) (decimal.Decimal, error) {
	if strings.TrimSpace(propertyID) == "" {
		return decimal.Zero, ErrNoProperty
	}
	from, to, err := MonthWindow(year, month)
	if err != nil {
		return decimal.Zero, err
	}
	if s.Store == nil {
		return decimal.Zero, errors.New("revenue store not configured")
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Medium(), s.Log, "monthly revenue")
	defer cancel()

	s.Log.Debug("querying monthly revenue",
		zap.String("tenant_id", tenantID),
		zap.String("property_id", propertyID),
		zap.Time("from", from),
		zap.Time("to", to))

	t, err := s.Store.TotalsBetween(ctx, tenantID, propertyID, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monthly revenue %s/%s: %w", tenantID, propertyID, err)
	}
	return Round(t.Amount), nil
}
