// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a single feed entry.
//
// CommunityID is nil for posts made to the general feed; that is an
// explicit "no community" state, not a reference to a real community
// record. Likes and SavedBy are id sets mutated only through the
// setfield editor, so a given user id appears at most once in each.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Content     string               `bson:"content" json:"content"`
	AuthorID    primitive.ObjectID   `bson:"author_id" json:"authorId"`
	CommunityID *primitive.ObjectID  `bson:"community_id,omitempty" json:"communityId,omitempty"`
	Media       []string             `bson:"media" json:"media"` // ordered public URLs
	Likes       []primitive.ObjectID `bson:"likes" json:"likes"`
	SavedBy     []primitive.ObjectID `bson:"saved_by" json:"savedBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
