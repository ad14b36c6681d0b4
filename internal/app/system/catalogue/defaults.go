package catalogue

import "github.com/dalemusser/revenuedash/internal/domain/models"

// Default returns the built-in catalogue.
func Default() *Catalogue {
	c := &Catalogue{
		Dashboard: StaticList{
			Default: "prop-001",
			Properties: []models.Property{
				{PropertyID: "prop-001", Name: "Beach House Alpha"},
				{PropertyID: "prop-002", Name: "City Apartment Downtown"},
				{PropertyID: "prop-003", Name: "Country Villa Estate"},
				{PropertyID: "prop-004", Name: "Lakeside Cottage"},
				{PropertyID: "prop-005", Name: "Urban Loft Modern"},
				{PropertyID: "prop-precision-demo", Name: "Precision Demo"},
			},
		},
		Tenants: map[string][]models.Property{
			"tenant-a": {
				{PropertyID: "prop-001", Name: "Beach House Alpha"},
				{PropertyID: "prop-002", Name: "City Apartment Downtown"},
				{PropertyID: "prop-003", Name: "Country Villa Estate"},
				{PropertyID: "prop-precision-demo", Name: "Precision Demo"},
			},
			"tenant-b": {
				{PropertyID: "prop-001", Name: "Mountain Lodge Beta"},
				{PropertyID: "prop-004", Name: "Lakeside Cottage"},
				{PropertyID: "prop-005", Name: "Urban Loft Modern"},
				{PropertyID: "prop-precision-demo", Name: "Precision Demo"},
			},
		},
		// 2.675 and 3.675 are the values float rounding gets wrong.
		Revenue: []RevenueFigure{
			{Tenant: "tenant-a", Property: "prop-001", Total: "1000.00", Count: 3},
			{Tenant: "tenant-a", Property: "prop-002", Total: "4975.50", Count: 4},
			{Tenant: "tenant-a", Property: "prop-003", Total: "6100.50", Count: 2},
			{Tenant: "tenant-b", Property: "prop-001", Total: "0.00", Count: 0},
			{Tenant: "tenant-b", Property: "prop-004", Total: "1776.50", Count: 4},
			{Tenant: "tenant-b", Property: "prop-005", Total: "3256.00", Count: 3},
			{Tenant: "tenant-a", Property: "prop-precision-demo", Total: "2.675", Count: 1},
			{Tenant: "tenant-b", Property: "prop-precision-demo", Total: "3.675", Count: 1},
		},
	}
	if err := c.index(); err != nil {
		panic("catalogue: invalid built-in defaults: " + err.Error())
	}
	return c
}
