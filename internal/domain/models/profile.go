package models

import "time"

// MaxProfileFieldLen is the cap on free-form profile text fields. The route
// layer rejects longer input with a validation error; nothing truncates.
const MaxProfileFieldLen = 80

// UserProfile is the free-form profile overlay keyed by user id. The session
// carries a cached copy; the persisted row is authoritative when reachable.
type UserProfile struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
}

// ProfileRow is the persisted shape in the profiles collection.
type ProfileRow struct {
	UserID    string    `bson:"user_id"`
	FullName  string    `bson:"full_name"`
	JobTitle  string    `bson:"job_title"`
	UpdatedAt time.Time `bson:"updated_at"`
}
