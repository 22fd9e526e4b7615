package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/system/normalize"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB connects to the Mongo instance named by
// TENANTHUB_TEST_MONGO_URI and hands the test a uniquely named database
// that is dropped on cleanup. Tests calling this are skipped when the env
// var is unset, so the suite stays runnable without a database.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TENANTHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TENANTHUB_TEST_MONGO_URI not set; skipping Mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}

	dbName := fmt.Sprintf("tenanthub_test_%s", primitive.NewObjectID().Hex())
	db := client.Database(dbName)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database %s: %v", dbName, err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context that expires with a comfortable margin for
// a single test's store calls.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)
	return ctx
}

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

// CreateTenant creates a test tenant with the given name.
func (f *Fixtures) CreateTenant(ctx context.Context, name string) models.Tenant {
	f.t.Helper()

	now := time.Now().UTC()
	tenant := models.Tenant{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tenants").InsertOne(ctx, tenant); err != nil {
		f.t.Fatalf("failed to create test tenant: %v", err)
	}

	return tenant
}

// CreateMembership binds a user to a tenant with the given role. CreatedAt
// can be pushed into the past to control which membership is "earliest".
func (f *Fixtures) CreateMembership(ctx context.Context, tenantID primitive.ObjectID, userID, role string, createdAt time.Time) models.Membership {
	f.t.Helper()

	m := models.Membership{
		ID:        primitive.NewObjectID(),
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: createdAt.UTC(),
	}

	if _, err := f.db.Collection("memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}

	return m
}

// CreateUser creates a local password account. The hash is stored verbatim;
// pass a real bcrypt hash when the test exercises sign-in.
func (f *Fixtures) CreateUser(ctx context.Context, email, passwordHash string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      normalize.Email(email),
		PasswordHash: passwordHash,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateProfile inserts a persisted profile row for a user.
func (f *Fixtures) CreateProfile(ctx context.Context, userID, fullName, jobTitle string) models.ProfileRow {
	f.t.Helper()

	row := models.ProfileRow{
		UserID:    userID,
		FullName:  fullName,
		JobTitle:  jobTitle,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("profiles").InsertOne(ctx, row); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}

	return row
}
