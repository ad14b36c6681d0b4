package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProperty inserts a property for tenantID. Properties created later
// sort after earlier ones.
func (f *Fixtures) CreateProperty(ctx context.Context, tenantID, propertyID, name string) models.Property {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Property{
		ID:         primitive.NewObjectID(),
		TenantID:   tenantID,
		PropertyID: propertyID,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("properties").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test property: %v", err)
	}
	return p
}

// CreateReservation inserts a reservation with the given decimal amount.
func (f *Fixtures) CreateReservation(ctx context.Context, tenantID, propertyID, amount string, checkIn time.Time) models.Reservation {
	f.t.Helper()

	d, err := primitive.ParseDecimal128(amount)
	if err != nil {
		f.t.Fatalf("bad amount %q: %v", amount, err)
	}
	res := models.Reservation{
		ID:          primitive.NewObjectID(),
		TenantID:    tenantID,
		PropertyID:  propertyID,
		CheckIn:     checkIn.UTC(),
		CheckOut:    checkIn.UTC().Add(48 * time.Hour),
		TotalAmount: d,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("reservations").InsertOne(ctx, res); err != nil {
		f.t.Fatalf("failed to create test reservation: %v", err)
	}
	return res
}

// CreateUser inserts an active user with a bcrypt hash of password.
func (f *Fixtures) CreateUser(ctx context.Context, tenantID, loginID, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		TenantID:     tenantID,
		LoginID:      loginID,
		LoginIDCI:    text.Fold(loginID),
		FullName:     "Test " + loginID,
		PasswordHash: string(hash),
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
