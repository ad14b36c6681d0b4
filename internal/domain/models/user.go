// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a dashboard operator. Every user belongs to exactly one tenant and
// only ever sees that tenant's properties and revenue.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID     string             `bson:"tenant_id" json:"tenant_id"`
	LoginID      string             `bson:"login_id" json:"login_id"`
	LoginIDCI    string             `bson:"login_id_ci" json:"-"` // lowercase, diacritics-stripped
	FullName     string             `bson:"full_name" json:"full_name"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive reports whether the user may sign in.
func (u User) IsActive() bool {
	return u.Status == "" || u.Status == "active"
}
