// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a campus account. JSON tags are camelCase because the SPA
// consumes these records directly.
//
// NOTE:
//   - Likes, saves, and community membership are not embedded on User.
//     They live as id sets on Post.likes / Post.saved_by /
//     Community.members and are discovered from those collections.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	NameCI         string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash,omitempty" json:"-"`
	AuthMethod     string             `bson:"auth_method,omitempty" json:"-"` // password | google
	Bio            string             `bson:"bio" json:"bio"`
	ProfilePicture string             `bson:"profile_picture" json:"profilePicture"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
