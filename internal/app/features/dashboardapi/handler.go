// internal/app/features/dashboardapi/handler.go
package dashboardapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PropertyLister returns the properties of one tenant. It never fails; an
// unknown tenant gets an empty list.
type PropertyLister interface {
	List(ctx context.Context, tenantID string) []models.Property
}

// SummaryService computes revenue figures for one property.
type SummaryService interface {
	Summary(ctx context.Context, tenantID, propertyID string) (models.RevenueSummary, error)
	MonthlyRevenue(ctx context.Context, tenantID, propertyID string, year int, month time.Month) (decimal.Decimal, error)
}

// Handler serves the dashboard's JSON API for the session tenant.
type Handler struct {
	Properties PropertyLister
	Revenue    SummaryService
	Log        *zap.Logger
}

// NewHandler creates a dashboard API handler.
func NewHandler(props PropertyLister, revenue SummaryService, logger *zap.Logger) *Handler {
	return &Handler{Properties: props, Revenue: revenue, Log: logger}
}

type propertyJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type summaryJSON struct {
	PropertyID        string      `json:"property_id"`
	TotalRevenue      json.Number `json:"total_revenue"`
	Currency          string      `json:"currency"`
	ReservationsCount int64       `json:"reservations_count"`
}

// ServeProperties returns the caller's tenant properties.
//
// Response format:
//
//	[ { "id": "prop-001", "name": "Beach House Alpha" }, ... ]
func (h *Handler) ServeProperties(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	list := h.Properties.List(r.Context(), tenantID)
	out := make([]propertyJSON, 0, len(list))
	for _, p := range list {
		out = append(out, propertyJSON{ID: p.PropertyID, Name: p.DisplayName()})
	}

	h.Log.Debug("dashboard properties served",
		zap.String("tenant_id", tenantID),
		zap.Int("count", len(out)))

	writeJSON(w, http.StatusOK, out)
}

// ServeSummary returns the revenue summary of property_id for the caller's
// tenant. The total is a JSON number with exactly two decimals.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	propertyID := strings.TrimSpace(query.Get(r, "property_id"))
	if propertyID == "" {
		writeError(w, http.StatusBadRequest, "property_id is required")
		return
	}

	sum, err := h.Revenue.Summary(r.Context(), tenantID, propertyID)
	if err != nil {
		h.Log.Error("revenue summary failed",
			zap.String("tenant_id", tenantID),
			zap.String("property_id", propertyID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "summary unavailable")
		return
	}

	writeJSON(w, http.StatusOK, summaryJSON{
		PropertyID:        sum.PropertyID,
		TotalRevenue:      json.Number(sum.Total.StringFixed(2)),
		Currency:          sum.Currency,
		ReservationsCount: sum.ReservationsCount,
	})
}

type monthlyJSON struct {
	PropertyID   string      `json:"property_id"`
	Month        string      `json:"month"`
	TotalRevenue json.Number `json:"total_revenue"`
	Currency     string      `json:"currency"`
}

// ServeMonthly returns the revenue of property_id for reservations checking in
// during month (YYYY-MM). There is no fallback: a store failure answers 503.
func (h *Handler) ServeMonthly(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := authz.Tenant(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	propertyID := strings.TrimSpace(query.Get(r, "property_id"))
	if propertyID == "" {
		writeError(w, http.StatusBadRequest, "property_id is required")
		return
	}
	month, err := time.Parse("2006-01", strings.TrimSpace(query.Get(r, "month")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	total, err := h.Revenue.MonthlyRevenue(r.Context(), tenantID, propertyID, month.Year(), month.Month())
	if err != nil {
		h.Log.Warn("monthly revenue failed",
			zap.String("tenant_id", tenantID),
			zap.String("property_id", propertyID),
			zap.String("month", month.Format("2006-01")),
			zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "monthly revenue unavailable")
		return
	}

	writeJSON(w, http.StatusOK, monthlyJSON{
		PropertyID:   propertyID,
		Month:        month.Format("2006-01"),
		TotalRevenue: json.Number(total.StringFixed(2)),
		Currency:     models.DefaultCurrency,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
