package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Participant is one speaking-time entry of a meeting.
type Participant struct {
	Name         string `bson:"name"          json:"name"`
	SpeakingTime int64  `bson:"speaking_time" json:"speaking_time"`
}

// Meeting represents a recorded meeting owned by a single user, optionally
// associated with one of their groups. Duration and speaking times are in
// seconds; duration is positive at creation and the owner never changes.
type Meeting struct {
	ID           bson.ObjectID `bson:"_id,omitempty"      json:"id"`
	UserID       string        `bson:"user_id"            json:"user_id"`
	GroupID      *string       `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Title        string        `bson:"title"              json:"title"`
	Date         time.Time     `bson:"date"               json:"date"`
	Duration     int64         `bson:"duration"           json:"duration"`
	Participants []Participant `bson:"participants"       json:"participants"`
	Notes        string        `bson:"notes"              json:"notes"`
	CreatedAt    time.Time     `bson:"created_at"         json:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"         json:"updated_at"`
}
