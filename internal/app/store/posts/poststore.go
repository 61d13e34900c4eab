package poststore

import (
	"context"
	"errors"
	"time"

	"github.com/real-ds/VITConnectDemo/internal/app/store/setfield"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection

	likes   *setfield.Editor
	savedBy *setfield.Editor
}

func New(db *mongo.Database) *Store {
	c := db.Collection("posts")
	return &Store{
		c:       c,
		likes:   setfield.NewEditor(c, "likes"),
		savedBy: setfield.NewEditor(c, "saved_by"),
	}
}

// ErrNotFound is returned for lookups of a missing post.
var ErrNotFound = errors.New("post not found")

// Likes returns the set editor for the likes field.
func (s *Store) Likes() *setfield.Editor {
	return s.likes
}

// SavedBy returns the set editor for the saved_by field.
func (s *Store) SavedBy() *setfield.Editor {
	return s.savedBy
}

// GetByID loads a post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a post with empty likes/saved_by sets. Media URLs
// keep the order the caller uploaded them in.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	if p.Media == nil {
		p.Media = []string{}
	}
	p.Likes = []primitive.ObjectID{}
	p.SavedBy = []primitive.ObjectID{}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// ListNewest returns all posts in canonical feed order: created_at
// descending, newest first.
func (s *Store) ListNewest(ctx context.Context) ([]models.Post, error) {
	return s.list(ctx, bson.M{}, true)
}

// ListByCommunity returns a community's posts.
func (s *Store) ListByCommunity(ctx context.Context, communityID primitive.ObjectID) ([]models.Post, error) {
	return s.list(ctx, bson.M{"community_id": communityID}, false)
}

// ListByAuthor returns a user's posts.
func (s *Store) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.list(ctx, bson.M{"author_id": authorID}, false)
}

// ListSavedBy returns the posts a user has saved, newest first.
func (s *Store) ListSavedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.list(ctx, bson.M{"saved_by": userID}, true)
}

func (s *Store) list(ctx context.Context, filter bson.M, newestFirst bool) ([]models.Post, error) {
	opts := options.Find()
	if newestFirst {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
