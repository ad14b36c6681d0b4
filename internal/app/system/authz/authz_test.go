package authz_test

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"github.com/dalemusser/revenuedash/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := testUserID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Name: "Alice", TenantID: "tenant-a"})

	tenant, name, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok")
	}
	if tenant != "tenant-a" || name != "Alice" || userID.Hex() != id {
		t.Errorf("unexpected values: %q %q %s", tenant, name, userID.Hex())
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false without a user")
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "nope", TenantID: "tenant-a"})

	if _, _, _, ok := authz.UserCtx(req); ok {
		t.Error("expected ok=false for malformed user id")
	}
}

func TestUserCtx_NoTenant(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID()})

	if _, ok := authz.Tenant(req); ok {
		t.Error("expected ok=false for a user without a tenant")
	}
}

func TestScope_AddsTenant(t *testing.T) {
	filter := authz.Scope("tenant-b", bson.M{"property_id": "prop-001"})

	if filter["tenant_id"] != "tenant-b" {
		t.Errorf("tenant_id = %v", filter["tenant_id"])
	}
	if filter["property_id"] != "prop-001" {
		t.Error("expected original filter preserved")
	}
}

func TestScope_NilFilter(t *testing.T) {
	filter := authz.Scope("tenant-a", nil)
	if len(filter) != 1 || filter["tenant_id"] != "tenant-a" {
		t.Errorf("unexpected filter %v", filter)
	}
}

func TestRequireTenant(t *testing.T) {
	handler := authz.RequireTenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("no user: status %d, want 403", rec.Code)
	}

	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: testUserID(), TenantID: "tenant-a"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("tenant user: status %d, want 200", rec.Code)
	}
}
