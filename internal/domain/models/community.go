// internal/domain/models/community.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community is a topical space users post into.
//
// Members is a set of user ids with union/difference mutation
// semantics: it is only ever changed through the setfield editor, one
// atomic $addToSet/$pull at a time, so a user id appears at most once.
// The creator is always a member at creation.
type Community struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Description string               `bson:"description" json:"description"`
	CreatorID   primitive.ObjectID   `bson:"creator_id" json:"creatorId"`
	CoverImage  string               `bson:"cover_image" json:"coverImage"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether userID is in the members set.
func (c *Community) HasMember(userID primitive.ObjectID) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	return false
}
