// Package catalogue holds the configured property data that does not come
// from the database: the static dashboard list, the per-tenant fallback lists
// served when the property store is unavailable, and demo revenue figures.
//
// A catalogue is loaded once at startup from an optional YAML file. Without a
// file the built-in defaults are used.
package catalogue

import (
	"fmt"
	"os"

	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StaticList is the catalogue offered by the static dashboard.
type StaticList struct {
	Default    string            `yaml:"default"`
	Properties []models.Property `yaml:"properties"`
}

// RevenueFigure is a demo revenue total for one (tenant, property) pair.
type RevenueFigure struct {
	Tenant   string `yaml:"tenant"`
	Property string `yaml:"property"`
	Total    string `yaml:"total"`
	Count    int64  `yaml:"count"`
}

// Catalogue is the parsed file.
type Catalogue struct {
	Dashboard StaticList                   `yaml:"dashboard"`
	Tenants   map[string][]models.Property `yaml:"tenants"`
	Revenue   []RevenueFigure              `yaml:"revenue"`

	totals map[figureKey]figure
}

type figureKey struct{ tenant, property string }

type figure struct {
	total decimal.Decimal
	count int64
}

// Load reads the catalogue at path. An empty path yields Default().
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalogue.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalogue) index() error {
	if err := uniqueIDs("dashboard", c.Dashboard.Properties); err != nil {
		return err
	}
	for tenant, list := range c.Tenants {
		if err := uniqueIDs("tenant "+tenant, list); err != nil {
			return err
		}
	}

	c.totals = make(map[figureKey]figure, len(c.Revenue))
	for _, f := range c.Revenue {
		total, err := decimal.NewFromString(f.Total)
		if err != nil {
			return fmt.Errorf("catalogue revenue %s/%s: invalid total %q: %w", f.Tenant, f.Property, f.Total, err)
		}
		c.totals[figureKey{f.Tenant, f.Property}] = figure{total: total, count: f.Count}
	}
	return nil
}

func uniqueIDs(where string, list []models.Property) error {
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if p.PropertyID == "" {
			return fmt.Errorf("catalogue %s: property with empty id", where)
		}
		if _, dup := seen[p.PropertyID]; dup {
			return fmt.Errorf("catalogue %s: duplicate property id %q", where, p.PropertyID)
		}
		seen[p.PropertyID] = struct{}{}
	}
	return nil
}

// StaticProperties returns a copy of the static dashboard list.
func (c *Catalogue) StaticProperties() []models.Property {
	out := make([]models.Property, len(c.Dashboard.Properties))
	copy(out, c.Dashboard.Properties)
	return out
}

// DefaultID is the static dashboard's initial selection.
func (c *Catalogue) DefaultID() string {
	return c.Dashboard.Default
}

// TenantProperties returns the fallback list for tenantID, or an empty list
// for tenants the catalogue does not know.
func (c *Catalogue) TenantProperties(tenantID string) []models.Property {
	list := c.Tenants[tenantID]
	out := make([]models.Property, 0, len(list))
	for _, p := range list {
		p.TenantID = tenantID
		out = append(out, p)
	}
	return out
}

// RevenueFigure returns the demo total and reservation count for a pair.
func (c *Catalogue) RevenueFigure(tenantID, propertyID string) (decimal.Decimal, int64, bool) {
	f, ok := c.totals[figureKey{tenantID, propertyID}]
	if !ok {
		return decimal.Zero, 0, false
	}
	return f.total, f.count, true
}
