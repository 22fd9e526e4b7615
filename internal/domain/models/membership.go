package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership binds one user to one tenant with a role. Unique per
// (tenant_id, user_id). The earliest-created membership is the user's
// primary tenant.
//
// UserID is the identity provider's user id, stored as a string: local
// password users carry a Mongo ObjectID hex, other providers carry their
// own id format.
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TenantID  primitive.ObjectID `bson:"tenant_id"`
	UserID    string             `bson:"user_id"`
	Role      string             `bson:"role"` // lowercase: owner | admin | member | viewer
	CreatedAt time.Time          `bson:"created_at"`
}
