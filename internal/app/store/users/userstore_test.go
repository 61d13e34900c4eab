package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/domain/models"
	"github.com/real-ds/VITConnectDemo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ensureEmailIndex(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create email index: %v", err)
	}
}

func TestCreate_NormalizesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	u, err := s.Create(ctx, models.User{
		Name:       "  Asha Nair  ",
		Email:      " Asha.Nair@Example.COM ",
		AuthMethod: "Password",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Name != "Asha Nair" {
		t.Errorf("name: got %q", u.Name)
	}
	if u.Email != "asha.nair@example.com" {
		t.Errorf("email: got %q", u.Email)
	}
	if u.NameCI != "asha nair" {
		t.Errorf("name_ci: got %q", u.NameCI)
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ensureEmailIndex(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	if _, err := s.Create(ctx, models.User{Name: "Asha", Email: "asha@example.com"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// Same address with different case must also collide.
	_, err := s.Create(ctx, models.User{Name: "Other", Email: "ASHA@example.com"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	created, err := s.Create(ctx, models.User{Name: "Asha", Email: "asha@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := s.GetByEmail(ctx, "Asha@Example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	if _, err := s.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile_OnlyTouchesGivenFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	created, err := s.Create(ctx, models.User{Name: "Asha", Email: "asha@example.com", Bio: "original bio"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Asha N."
	got, err := s.UpdateProfile(ctx, created.ID, userstore.ProfileUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Asha N." {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Bio != "original bio" {
		t.Errorf("bio should be untouched, got %q", got.Bio)
	}
	if got.Email != created.Email {
		t.Errorf("email should be untouched, got %q", got.Email)
	}
}

func TestUpdateProfile_Picture(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	created, err := s.Create(ctx, models.User{Name: "Asha", Email: "asha@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	url := "https://cdn.example/profiles/" + created.ID.Hex()
	got, err := s.UpdateProfile(ctx, created.ID, userstore.ProfileUpdate{ProfilePicture: &url})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.ProfilePicture != url {
		t.Errorf("picture: got %q, want %q", got.ProfilePicture, url)
	}
}

func TestUpdateProfile_MissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := userstore.New(db)
	name := "Ghost"
	_, err := s.UpdateProfile(ctx, primitive.NewObjectID(), userstore.ProfileUpdate{Name: &name})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
