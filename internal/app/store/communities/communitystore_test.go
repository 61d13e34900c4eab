package communitystore_test

import (
	"errors"
	"testing"
	"time"

	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"github.com/real-ds/VITConnectDemo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ensureNameIndex(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := db.Collection("communities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_ci", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create name_ci index: %v", err)
	}
}

func TestCreate_CreatorIsOnlyMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := communitystore.New(db)
	creator := primitive.NewObjectID()

	created, err := s.Create(ctx, models.Community{
		Name:      "Robotics",
		CreatorID: creator,
		// A caller-supplied member list is ignored.
		Members: []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Members) != 1 || created.Members[0] != creator {
		t.Errorf("members: got %v, want exactly the creator", created.Members)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.HasMember(creator) {
		t.Error("creator missing from stored members")
	}
	if len(got.Members) != 1 {
		t.Errorf("stored members: got %d, want 1", len(got.Members))
	}
}

func TestCreate_DuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ensureNameIndex(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := communitystore.New(db)
	creator := primitive.NewObjectID()

	if _, err := s.Create(ctx, models.Community{Name: "Robotics", CreatorID: creator}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create(ctx, models.Community{Name: "ROBOTICS", CreatorID: creator})
	if !errors.Is(err, communitystore.ErrDuplicateName) {
		t.Fatalf("got %v, want ErrDuplicateName", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := communitystore.New(db)
	creator := primitive.NewObjectID()

	first, err := s.Create(ctx, models.Community{Name: "First", CreatorID: creator})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := s.Create(ctx, models.Community{Name: "Second", CreatorID: creator})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Push the second community's created_at clearly past the first.
	_, err = db.Collection("communities").UpdateOne(ctx,
		bson.M{"_id": second.ID},
		bson.M{"$set": bson.M{"created_at": second.CreatedAt.Add(time.Second)}})
	if err != nil {
		t.Fatalf("bump created_at: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d communities, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("list not ordered newest first")
	}
}

func TestMembers_ToggleRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := communitystore.New(db)
	creator := primitive.NewObjectID()
	joiner := primitive.NewObjectID()

	created, err := s.Create(ctx, models.Community{Name: "Robotics", CreatorID: creator})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	res, err := s.Members().Toggle(ctx, created.ID, joiner)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !res.Present || len(res.Members) != 2 {
		t.Errorf("join: present=%v members=%d", res.Present, len(res.Members))
	}

	res, err = s.Members().Toggle(ctx, created.ID, joiner)
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if res.Present || len(res.Members) != 1 {
		t.Errorf("leave: present=%v members=%d", res.Present, len(res.Members))
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := communitystore.New(db)
	if _, err := s.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, communitystore.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
