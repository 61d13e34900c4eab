package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with a unique email and returns it.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Email:      uuid.NewString() + "@test.example",
		AuthMethod: "password",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateCommunity inserts a test community whose members set holds
// exactly the creator, matching the creation invariant.
func (f *Fixtures) CreateCommunity(ctx context.Context, name string, creatorID primitive.ObjectID) models.Community {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Community{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatorID: creatorID,
		Members:   []primitive.ObjectID{creatorID},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("communities").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test community: %v", err)
	}
	return c
}

// CreatePost inserts a test post with empty likes/saved_by sets.
// communityID may be nil for a general-feed post.
func (f *Fixtures) CreatePost(ctx context.Context, title string, authorID primitive.ObjectID, communityID *primitive.ObjectID) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Content:     "test content for " + title,
		AuthorID:    authorID,
		CommunityID: communityID,
		Media:       []string{},
		Likes:       []primitive.ObjectID{},
		SavedBy:     []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}

// CreatePostAt inserts a post with an explicit creation time. Feed
// ordering tests use this to control created_at.
func (f *Fixtures) CreatePostAt(ctx context.Context, title string, authorID primitive.ObjectID, communityID *primitive.ObjectID, at time.Time) models.Post {
	f.t.Helper()

	p := models.Post{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Content:     "test content for " + title,
		AuthorID:    authorID,
		CommunityID: communityID,
		Media:       []string{},
		Likes:       []primitive.ObjectID{},
		SavedBy:     []primitive.ObjectID{},
		CreatedAt:   at,
		UpdatedAt:   at,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
