// internal/app/store/properties/propertystore.go
package propertystore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"github.com/dalemusser/revenuedash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("property not found")
	ErrDuplicateProperty = errors.New("a property with this id already exists for the tenant")
	errBadProperty       = errors.New("tenant_id and property_id are required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("properties")}
}

// ListByTenant returns the tenant's properties in creation order. The
// dashboard selects the first entry, so the order must be stable.
func (s *Store) ListByTenant(ctx context.Context, tenantID string) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, authz.Scope(tenantID, nil), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Property, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByPropertyID loads one property of a tenant.
func (s *Store) GetByPropertyID(ctx context.Context, tenantID, propertyID string) (models.Property, error) {
	var p models.Property
	err := s.c.FindOne(ctx, authz.Scope(tenantID, bson.M{"property_id": propertyID})).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Property{}, ErrNotFound
	}
	if err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// Create inserts a new property. The name is reduced to plain text.
func (s *Store) Create(ctx context.Context, p models.Property) (models.Property, error) {
	p.TenantID = strings.TrimSpace(p.TenantID)
	p.PropertyID = strings.TrimSpace(p.PropertyID)
	if p.TenantID == "" || p.PropertyID == "" {
		return models.Property{}, errBadProperty
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Name = htmlsanitize.PlainText(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Property{}, ErrDuplicateProperty
		}
		return models.Property{}, err
	}
	return p, nil
}

// Upsert creates the property or renames an existing one. created_at is only
// set on insert so list order is preserved across renames.
func (s *Store) Upsert(ctx context.Context, tenantID, propertyID, name string) error {
	tenantID = strings.TrimSpace(tenantID)
	propertyID = strings.TrimSpace(propertyID)
	if tenantID == "" || propertyID == "" {
		return errBadProperty
	}
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		authz.Scope(tenantID, bson.M{"property_id": propertyID}),
		bson.M{
			"$set": bson.M{
				"name":       htmlsanitize.PlainText(name),
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Delete removes one property of a tenant. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, tenantID, propertyID string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, authz.Scope(tenantID, bson.M{"property_id": propertyID}))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
