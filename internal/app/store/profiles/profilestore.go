// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"time"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store persists free-form profile fields keyed by user id. It degrades
// gracefully: constructed without a database (nil), Load reports not-found
// and Save reports persisted=false instead of failing the caller, so the
// session-cached copy keeps working.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

// New builds the store. db may be nil when no backing store is configured.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	s := &Store{log: logger}
	if db != nil {
		s.c = db.Collection("profiles")
	}
	return s
}

// Configured reports whether a backing collection is available.
func (s *Store) Configured() bool {
	return s != nil && s.c != nil
}

// Load fetches the persisted profile for a user. The second return is a
// found flag; an unconfigured store and a missing row both read as
// not-found, letting callers fall back to session-cached values. A store
// failure also reads as not-found: the persisted overlay is optional.
func (s *Store) Load(ctx context.Context, userID string) (models.UserProfile, bool, error) {
	if !s.Configured() {
		return models.UserProfile{}, false, nil
	}

	var row models.ProfileRow
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return models.UserProfile{}, false, nil
	}
	if err != nil {
		s.log.Warn("profile load failed, falling back to session values",
			zap.String("user_id", userID),
			zap.Error(err))
		return models.UserProfile{}, false, nil
	}

	return models.UserProfile{FullName: row.FullName, JobTitle: row.JobTitle}, true, nil
}

// Save upserts the profile row. The bool reports whether the write reached
// the database; when the store is unconfigured or unreachable the input is
// returned unchanged with persisted=false and no error, signaling
// session-only persistence. Field length limits are the caller's job.
func (s *Store) Save(ctx context.Context, userID string, profile models.UserProfile) (models.UserProfile, bool, error) {
	if !s.Configured() {
		return profile, false, nil
	}

	update := bson.M{"$set": bson.M{
		"full_name":  profile.FullName,
		"job_title":  profile.JobTitle,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts); err != nil {
		s.log.Warn("profile save degraded to session-only",
			zap.String("user_id", userID),
			zap.Error(err))
		return profile, false, nil
	}

	return profile, true, nil
}
