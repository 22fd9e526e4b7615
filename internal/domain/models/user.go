package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used when no configured site name is available.
const DefaultSiteName = "TenantHub"

// User is a local password-authenticated account. Tenant membership is not
// embedded here; the memberships collection is the source of truth.
// EmailCI is the folded form stored for case-insensitive login lookups.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	EmailCI      string             `bson:"email_ci"`
	PasswordHash string             `bson:"password_hash"`
	Status       string             `bson:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
