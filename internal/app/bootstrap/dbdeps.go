// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Both fields are nil when no mongo_uri is configured; every consumer
// must tolerate that and fall back to the degraded (session-only) mode.
type DBDeps struct {
	TenantHubMongoClient   *mongo.Client
	TenantHubMongoDatabase *mongo.Database
}
