// internal/app/store/reservations/reservationstore.go
package reservationstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errBadReservation = errors.New("tenant_id and property_id are required")

// Totals is the unrounded sum of reservation amounts and their count.
type Totals struct {
	Amount decimal.Decimal
	Count  int64
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reservations")}
}

// Create inserts a reservation.
func (s *Store) Create(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	r.TenantID = strings.TrimSpace(r.TenantID)
	r.PropertyID = strings.TrimSpace(r.PropertyID)
	if r.TenantID == "" || r.PropertyID == "" {
		return models.Reservation{}, errBadReservation
	}
	r.ID = primitive.NewObjectID()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Reservation{}, err
	}
	return r, nil
}

// Totals sums every reservation of one property of one tenant.
func (s *Store) Totals(ctx context.Context, tenantID, propertyID string) (Totals, error) {
	return s.sum(ctx, authz.Scope(tenantID, bson.M{"property_id": propertyID}))
}

// TotalsBetween sums reservations whose check-in falls in [from, to).
func (s *Store) TotalsBetween(ctx context.Context, tenantID, propertyID string, from, to time.Time) (Totals, error) {
	return s.sum(ctx, authz.Scope(tenantID, bson.M{
		"property_id":   propertyID,
		"check_in_date": bson.M{"$gte": from, "$lt": to},
	}))
}

func (s *Store) sum(ctx context.Context, match bson.M) (Totals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return Totals{}, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total primitive.Decimal128 `bson:"total"`
		Count int64                `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return Totals{}, err
	}
	if len(rows) == 0 {
		return Totals{Amount: decimal.Zero}, nil
	}

	amount, err := decimal.NewFromString(rows[0].Total.String())
	if err != nil {
		return Totals{}, fmt.Errorf("decode revenue total %q: %w", rows[0].Total.String(), err)
	}
	return Totals{Amount: amount, Count: rows[0].Count}, nil
}
