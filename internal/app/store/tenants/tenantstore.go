// internal/app/store/tenants/tenantstore.go
package tenantstore

import (
	"context"
	"time"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tenants")}
}

// Create inserts a tenant row and returns it with its generated id.
func (s *Store) Create(ctx context.Context, name string) (models.Tenant, error) {
	now := time.Now().UTC()
	tenant := models.Tenant{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, tenant); err != nil {
		return models.Tenant{}, err
	}
	return tenant, nil
}

// GetByID fetches a tenant by its hex id.
func (s *Store) GetByID(ctx context.Context, idHex string) (*models.Tenant, error) {
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, err
	}
	var t models.Tenant
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// NameByID returns the tenant's name, or "" (no error) when no tenant row
// exists for the id. A malformed id also reads as absent; only real store
// failures are errors.
func (s *Store) NameByID(ctx context.Context, idHex string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return "", nil
	}

	var row struct {
		Name string `bson:"name"`
	}
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Name, nil
}
