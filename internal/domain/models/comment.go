// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to a post. Declared for completeness of the entity
// set; the comment read/write surface is not part of this service yet.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content  string             `bson:"content" json:"content"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"authorId"`
	PostID   primitive.ObjectID `bson:"post_id" json:"postId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
