// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/revenuedash/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's tenant, name, Mongo ObjectID, and a found flag.
// If no user is present in context, the user ID is malformed, or the user has
// no tenant, it returns "", "", NilObjectID, false. Callers can trust that
// ok=true means an authenticated user bound to exactly one tenant.
func UserCtx(r *http.Request) (tenantID string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	if user.TenantID == "" {
		return "", "", primitive.NilObjectID, false
	}
	return user.TenantID, user.Name, userID, true
}

// Tenant returns the current user's tenant and whether one is present.
func Tenant(r *http.Request) (string, bool) {
	tenantID, _, _, ok := UserCtx(r)
	return tenantID, ok
}

// Scope adds the tenant_id constraint to filter and returns it. A nil filter
// is allocated. Every store query that reads tenant data goes through here.
func Scope(tenantID string, filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["tenant_id"] = tenantID
	return filter
}

// RequireTenant rejects requests whose user is not bound to a tenant. It sits
// behind auth.RequireSignedIn, so reaching the 403 means a corrupt session.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Tenant(r); !ok {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
