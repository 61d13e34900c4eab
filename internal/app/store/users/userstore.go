package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/real-ds/VITConnectDemo/internal/app/system/normalize"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user with an email
	// that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned for lookups of a missing user.
	ErrNotFound = errors.New("user not found")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the fields a user may edit on their own profile.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string
	Bio            *string
	ProfilePicture *string
}

// UpdateProfile applies a partial profile edit in a single write. Only
// the non-nil fields of upd are touched, plus updated_at.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.ProfilePicture != nil {
		set["profile_picture"] = *upd.ProfilePicture
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}
