package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Squad is a community grouping of users with optional moderators.
//
// Members and moderators are embedded user id lists. A user's squads
// array mirrors membership; deleting a squad must pull its id from
// every member's squads before the squad document is removed.
type Squad struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Members    []primitive.ObjectID `bson:"members" json:"members"`
	Moderators []primitive.ObjectID `bson:"moderators" json:"moderators"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether the user belongs to the squad.
func (s *Squad) HasMember(userID primitive.ObjectID) bool {
	for _, m := range s.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// HasModerator reports whether the user moderates the squad.
func (s *Squad) HasModerator(userID primitive.ObjectID) bool {
	for _, m := range s.Moderators {
		if m == userID {
			return true
		}
	}
	return false
}
