// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/tenanthub/internal/app/store/audit"
	loginstore "github.com/dalemusser/tenanthub/internal/app/store/logins"
	membershipstore "github.com/dalemusser/tenanthub/internal/app/store/memberships"
	userstore "github.com/dalemusser/tenanthub/internal/app/store/users"
)

// ConnectDB establishes the MongoDB connection when one is configured.
// A blank mongo_uri is not an error: the app comes up with nil deps and
// every store consumer degrades to derivation/session-only behavior.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if !appCfg.MongoConfigured() {
		logger.Info("skipping MongoDB connect; no authoritative store configured")
		return DBDeps{}, nil
	}

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		TenantHubMongoClient:   client,
		TenantHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the stores rely on: the users unique
// email index, the (tenant_id, user_id) membership uniqueness, and the
// query-path indexes for login history and audit events.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.TenantHubMongoDatabase
	if db == nil {
		return nil
	}

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := membershipstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("memberships indexes: %w", err)
	}
	if err := loginstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("login_history indexes: %w", err)
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit_events indexes: %w", err)
	}

	logger.Info("MongoDB indexes ensured")
	return nil
}
