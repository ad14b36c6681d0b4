// internal/domain/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rentable unit owned by exactly one tenant.
//
// PropertyID is the opaque identifier shown to clients (e.g. "prop-001").
// It is unique within a tenant only; two tenants may both own a "prop-001",
// so every lookup must carry the tenant_id.
type Property struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-" yaml:"-"`
	TenantID   string             `bson:"tenant_id" json:"-" yaml:"-"`
	PropertyID string             `bson:"property_id" json:"id" yaml:"id"`
	Name       string             `bson:"name" json:"name" yaml:"name"`

	CreatedAt time.Time `bson:"created_at" json:"-" yaml:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-" yaml:"-"`
}

// DisplayName returns the name, falling back to the id when the name is blank.
func (p Property) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PropertyID
}
