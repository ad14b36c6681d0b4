package userinfo_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/features/userinfo"
	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	return response
}

func TestServeUserInfo_Unauthenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	rec := httptest.NewRecorder()
	handler.ServeUserInfo(rec, httptest.NewRequest("GET", "/api/v1/me", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	response := decode(t, rec)
	if isAuth, ok := response["isAuthenticated"].(bool); !ok || isAuth {
		t.Errorf("isAuthenticated: got %v, want false", response["isAuthenticated"])
	}
	if tenant, ok := response["tenant_id"].(string); !ok || tenant != "" {
		t.Errorf("tenant_id: got %v, want empty string", response["tenant_id"])
	}
}

func TestServeUserInfo_Authenticated(t *testing.T) {
	handler := userinfo.NewHandler()

	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Sunset Operator",
		LoginID:  "ops@sunset.test",
		TenantID: "tenant-a",
	})
	rec := httptest.NewRecorder()

	handler.ServeUserInfo(rec, req)

	response := decode(t, rec)
	if isAuth, ok := response["isAuthenticated"].(bool); !ok || !isAuth {
		t.Errorf("isAuthenticated: got %v, want true", response["isAuthenticated"])
	}
	if name := response["name"]; name != "Sunset Operator" {
		t.Errorf("name: got %v", name)
	}
	if loginID := response["login_id"]; loginID != "ops@sunset.test" {
		t.Errorf("login_id: got %v", loginID)
	}
	if tenant := response["tenant_id"]; tenant != "tenant-a" {
		t.Errorf("tenant_id: got %v, want tenant-a", tenant)
	}
}
