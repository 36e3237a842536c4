package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Group represents a named set of participants owned by a single user.
// Members are plain display names, not user references. The owner is set at
// creation and never changes. The member list keeps insertion order and
// contains no duplicates.
type Group struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string        `bson:"user_id"       json:"user_id"`
	Name        string        `bson:"name"          json:"name"`
	Description string        `bson:"description"   json:"description"`
	Members     []string      `bson:"members"       json:"members"`
	CreatedAt   time.Time     `bson:"created_at"    json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"    json:"updated_at"`
}
