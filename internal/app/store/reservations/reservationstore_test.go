package reservationstore_test

import (
	"testing"
	"time"

	reservationstore "github.com/dalemusser/revenuedash/internal/app/store/reservations"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/revenuedash/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Totals_SumsExactDecimals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reservationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "0.1", day)
	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "0.2", day)
	fixtures.CreateReservation(ctx, "tenant-a", "prop-002", "99.99", day)
	fixtures.CreateReservation(ctx, "tenant-b", "prop-001", "1000", day)

	got, err := store.Totals(ctx, "tenant-a", "prop-001")
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if got.Amount.String() != "0.3" {
		t.Errorf("expected exact 0.3, got %s", got.Amount.String())
	}
	if got.Count != 2 {
		t.Errorf("expected 2 reservations, got %d", got.Count)
	}
}

func TestStore_Totals_NoReservations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reservationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.Totals(ctx, "tenant-a", "prop-404")
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if !got.Amount.IsZero() || got.Count != 0 {
		t.Errorf("expected zero totals, got %+v", got)
	}
}

func TestStore_TotalsBetween_HalfOpen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reservationstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "10.00", from)
	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "20.00", to.Add(-time.Second))
	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "40.00", to)
	fixtures.CreateReservation(ctx, "tenant-a", "prop-001", "80.00", from.Add(-time.Second))

	got, err := store.TotalsBetween(ctx, "tenant-a", "prop-001", from, to)
	if err != nil {
		t.Fatalf("TotalsBetween failed: %v", err)
	}
	if got.Amount.StringFixed(2) != "30.00" || got.Count != 2 {
		t.Errorf("expected 30.00 over 2 reservations, got %s over %d", got.Amount.StringFixed(2), got.Count)
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reservationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	amount, _ := primitive.ParseDecimal128("250.50")
	created, err := store.Create(ctx, models.Reservation{
		TenantID:    "tenant-a",
		PropertyID:  "prop-003",
		CheckIn:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		TotalAmount: amount,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}

	got, err := store.Totals(ctx, "tenant-a", "prop-003")
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if got.Amount.StringFixed(2) != "250.50" {
		t.Errorf("expected 250.50, got %s", got.Amount.StringFixed(2))
	}

	if _, err := store.Create(ctx, models.Reservation{TenantID: "tenant-a"}); err == nil {
		t.Error("expected error for missing property_id")
	}
}
