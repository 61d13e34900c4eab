// internal/app/store/setfield/setfield.go
package setfield

// setfield is the one generic editor for set-valued record fields:
// Post.likes, Post.saved_by, and Community.members. All three call
// sites go through here so the union/difference discipline lives in
// one tested place.
//
// Mutations are expressed as single atomic $addToSet/$pull operations
// against the store, never as a local read followed by a full-array
// rewrite. Two concurrent editors can therefore never lose each
// other's updates: the server applies set semantics, and repeated adds
// or removes of the same id are no-ops.

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when the target record does not exist. The
// set is untouched in that case.
var ErrNotFound = errors.New("record not found")

// Editor mutates one set-valued array field on one collection.
type Editor struct {
	c     *mongo.Collection
	field string
}

// NewEditor binds an editor to a collection and array field name.
func NewEditor(c *mongo.Collection, field string) *Editor {
	return &Editor{c: c, field: field}
}

// Result reports the confirmed state of the set after a call. Callers
// reconcile optimistic UI against this rather than trusting their own
// pre-call snapshot.
type Result struct {
	// Members is the full set contents after the operation.
	Members []primitive.ObjectID
	// Present is whether the candidate id is in the set now.
	Present bool
}

// Add puts memberID into the set. Adding an id that is already
// present is a no-op: cardinality never grows past one occurrence.
func (e *Editor) Add(ctx context.Context, recordID, memberID primitive.ObjectID) (Result, error) {
	return e.apply(ctx, recordID, memberID, bson.M{
		"$addToSet": bson.M{e.field: memberID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
}

// Remove takes memberID out of the set. Removing an absent id is a
// no-op.
func (e *Editor) Remove(ctx context.Context, recordID, memberID primitive.ObjectID) (Result, error) {
	return e.apply(ctx, recordID, memberID, bson.M{
		"$pull": bson.M{e.field: memberID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

// Toggle flips memberID's membership: present means remove, absent
// means add. The decision is made from a just-fetched snapshot of the
// record, not from caller-supplied state, so a stale client cannot
// toggle twice into a silent no-op.
func (e *Editor) Toggle(ctx context.Context, recordID, memberID primitive.ObjectID) (Result, error) {
	present, err := e.Contains(ctx, recordID, memberID)
	if err != nil {
		return Result{}, err
	}
	if present {
		return e.Remove(ctx, recordID, memberID)
	}
	return e.Add(ctx, recordID, memberID)
}

// Contains reports whether memberID is currently in the set.
func (e *Editor) Contains(ctx context.Context, recordID, memberID primitive.ObjectID) (bool, error) {
	members, err := e.fetch(ctx, recordID)
	if err != nil {
		return false, err
	}
	return contains(members, memberID), nil
}

// apply runs one atomic update and returns the post-image of the set.
// If the write fails, nothing has been applied: the update is a single
// document operation, so there is no partial state to roll back.
func (e *Editor) apply(ctx context.Context, recordID, memberID primitive.ObjectID, update bson.M) (Result, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{e.field: 1})

	var doc bson.M
	err := e.c.FindOneAndUpdate(ctx, bson.M{"_id": recordID}, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, err
	}

	members := decodeIDArray(doc[e.field])
	return Result{Members: members, Present: contains(members, memberID)}, nil
}

func (e *Editor) fetch(ctx context.Context, recordID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.FindOne().SetProjection(bson.M{e.field: 1})

	var doc bson.M
	err := e.c.FindOne(ctx, bson.M{"_id": recordID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeIDArray(doc[e.field]), nil
}

func decodeIDArray(v any) []primitive.ObjectID {
	arr, ok := v.(primitive.A)
	if !ok {
		return []primitive.ObjectID{}
	}
	ids := make([]primitive.ObjectID, 0, len(arr))
	for _, item := range arr {
		if id, ok := item.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
