// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateMembership means the (tenant_id, user_id) pair already has a
// row; memberships are unique per pair.
var ErrDuplicateMembership = errors.New("user is already a member of this tenant")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

// EnsureIndexes creates the uniqueness and lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
	})
	return err
}

// Create inserts a membership row binding the user to the tenant.
func (s *Store) Create(ctx context.Context, tenantIDHex, userID string, role models.TenantRole) error {
	tenantID, err := primitive.ObjectIDFromHex(tenantIDHex)
	if err != nil {
		return err
	}

	doc := models.Membership{
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role.Storage(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// FirstForUser returns the user's earliest-created membership, or nil when
// the user has none. Tie-break is created_at ascending; absence of rows is
// not an error.
func (s *Store) FirstForUser(ctx context.Context, userID string) (*models.Membership, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForTenant returns all memberships of a tenant, oldest first.
func (s *Store) ListForTenant(ctx context.Context, tenantIDHex string) ([]models.Membership, error) {
	tenantID, err := primitive.ObjectIDFromHex(tenantIDHex)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"tenant_id": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.Membership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountByUser returns the count of memberships for a user.
func (s *Store) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}
