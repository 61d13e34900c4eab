package setfield_test

import (
	"testing"

	"github.com/real-ds/VITConnectDemo/internal/app/store/setfield"
	"github.com/real-ds/VITConnectDemo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdd_ThenContains(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator")
	community := fixtures.CreateCommunity(ctx, "Robotics Club", creator.ID)
	editor := setfield.NewEditor(db.Collection("communities"), "members")

	joiner := fixtures.CreateUser(ctx, "Joiner")
	res, err := editor.Add(ctx, community.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !res.Present {
		t.Error("expected candidate present after Add")
	}
	if len(res.Members) != 2 {
		t.Errorf("members size: got %d, want 2", len(res.Members))
	}

	present, err := editor.Contains(ctx, community.ID, joiner.ID)
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !present {
		t.Error("Contains should report the added id")
	}
}

func TestAdd_AlreadyPresentIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator")
	community := fixtures.CreateCommunity(ctx, "Chess Club", creator.ID)
	editor := setfield.NewEditor(db.Collection("communities"), "members")

	// The creator is already a member; repeated adds must not grow the set.
	for i := 0; i < 3; i++ {
		res, err := editor.Add(ctx, community.ID, creator.ID)
		if err != nil {
			t.Fatalf("Add #%d failed: %v", i+1, err)
		}
		if len(res.Members) != 1 {
			t.Fatalf("Add #%d: members size %d, want 1", i+1, len(res.Members))
		}
	}
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator")
	community := fixtures.CreateCommunity(ctx, "Film Society", creator.ID)
	editor := setfield.NewEditor(db.Collection("communities"), "members")

	stranger := primitive.NewObjectID()
	res, err := editor.Remove(ctx, community.ID, stranger)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if res.Present {
		t.Error("removed id should not be present")
	}
	if len(res.Members) != 1 {
		t.Errorf("members size: got %d, want 1 (creator untouched)", len(res.Members))
	}
}

func TestToggle_TwiceRestoresOriginal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	post := fixtures.CreatePost(ctx, "Toggle me", author.ID, nil)
	editor := setfield.NewEditor(db.Collection("posts"), "likes")

	liker := fixtures.CreateUser(ctx, "Liker")

	first, err := editor.Toggle(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("first Toggle failed: %v", err)
	}
	if !first.Present {
		t.Error("first toggle on an empty set should add")
	}

	second, err := editor.Toggle(ctx, post.ID, liker.ID)
	if err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if second.Present {
		t.Error("second toggle should remove")
	}
	if len(second.Members) != 0 {
		t.Errorf("set should be back to original membership, got %d entries", len(second.Members))
	}
}

func TestToggle_SavedByIndependentOfLikes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Author")
	post := fixtures.CreatePost(ctx, "Save me", author.ID, nil)
	likes := setfield.NewEditor(db.Collection("posts"), "likes")
	saves := setfield.NewEditor(db.Collection("posts"), "saved_by")

	user := fixtures.CreateUser(ctx, "Reader")

	if _, err := likes.Add(ctx, post.ID, user.ID); err != nil {
		t.Fatalf("likes Add failed: %v", err)
	}
	res, err := saves.Toggle(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("saved_by Toggle failed: %v", err)
	}
	if !res.Present || len(res.Members) != 1 {
		t.Errorf("saved_by: got present=%v size=%d, want present=true size=1", res.Present, len(res.Members))
	}

	liked, err := likes.Contains(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("likes Contains failed: %v", err)
	}
	if !liked {
		t.Error("editing saved_by must not disturb likes")
	}
}

func TestEditor_RecordNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	editor := setfield.NewEditor(db.Collection("posts"), "likes")

	_, err := editor.Add(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != setfield.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = editor.Toggle(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if err != setfield.ErrNotFound {
		t.Errorf("Toggle: expected ErrNotFound, got %v", err)
	}
}
