// internal/domain/models/reservation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation is a single booking against a tenant's property.
// TotalAmount is stored as Decimal128 so sums never pass through float64.
type Reservation struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	TenantID    string               `bson:"tenant_id" json:"tenant_id"`
	PropertyID  string               `bson:"property_id" json:"property_id"`
	CheckIn     time.Time            `bson:"check_in_date" json:"check_in_date"`
	CheckOut    time.Time            `bson:"check_out_date" json:"check_out_date"`
	TotalAmount primitive.Decimal128 `bson:"total_amount" json:"total_amount"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
