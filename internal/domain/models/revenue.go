// internal/domain/models/revenue.go
package models

import "github.com/shopspring/decimal"

// DefaultCurrency is the only currency reservations are recorded in.
const DefaultCurrency = "USD"

// RevenueSummary is the computed revenue for one property of one tenant.
type RevenueSummary struct {
	PropertyID        string
	TenantID          string
	Total             decimal.Decimal
	Currency          string
	ReservationsCount int64
}
