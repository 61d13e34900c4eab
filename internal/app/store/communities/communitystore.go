package communitystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/real-ds/VITConnectDemo/internal/app/store/setfield"
	"github.com/real-ds/VITConnectDemo/internal/app/system/normalize"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection

	// members is the set editor for the members field. Join/leave goes
	// through it and nowhere else.
	members *setfield.Editor
}

func New(db *mongo.Database) *Store {
	c := db.Collection("communities")
	return &Store{
		c:       c,
		members: setfield.NewEditor(c, "members"),
	}
}

var (
	// ErrDuplicateName is returned when a community with the same
	// folded name already exists.
	ErrDuplicateName = errors.New("a community with this name already exists")
	// ErrNotFound is returned for lookups of a missing community.
	ErrNotFound = errors.New("community not found")
)

// Members returns the set editor for the members field.
func (s *Store) Members() *setfield.Editor {
	return s.members
}

// GetByID loads a community by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	var c models.Community
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all communities, newest first.
func (s *Store) List(ctx context.Context) ([]models.Community, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var communities []models.Community
	if err := cur.All(ctx, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

// Create inserts a community. The creator is always the first member:
// the members set is initialized to exactly {creator_id}.
func (s *Store) Create(ctx context.Context, c models.Community) (models.Community, error) {
	c.ID = primitive.NewObjectID()
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	c.Members = []primitive.ObjectID{c.CreatorID}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Community{}, ErrDuplicateName
		}
		return models.Community{}, err
	}
	return c, nil
}
