package feed_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/real-ds/VITConnectDemo/internal/app/features/feed"
	communitystore "github.com/real-ds/VITConnectDemo/internal/app/store/communities"
	poststore "github.com/real-ds/VITConnectDemo/internal/app/store/posts"
	feedquery "github.com/real-ds/VITConnectDemo/internal/app/store/queries/feed"
	userstore "github.com/real-ds/VITConnectDemo/internal/app/store/users"
	"github.com/real-ds/VITConnectDemo/internal/app/system/apierr"
	"github.com/real-ds/VITConnectDemo/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *feed.Handler {
	log := zap.NewNop()
	posts := poststore.New(db)
	resolver := feedquery.NewStoreResolver(userstore.New(db), communitystore.New(db))
	assembler := feedquery.NewAssembler(resolver, log)
	return feed.NewHandler(posts, assembler, apierr.NewErrorLogger(log), log)
}

type feedResponse struct {
	Items []feedquery.Item `json:"items"`
}

func getFeed(t *testing.T, h *feed.Handler) feedResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()
	h.ServeFeed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var resp feedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestServeFeed_NewestFirstWithJoins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	author := fx.CreateUser(ctx, "Asha")
	comm := fx.CreateCommunity(ctx, "Robotics", author.ID)

	base := time.Now().UTC().Truncate(time.Millisecond)
	older := fx.CreatePostAt(ctx, "older", author.ID, &comm.ID, base.Add(-time.Hour))
	newer := fx.CreatePostAt(ctx, "newer", author.ID, nil, base)

	resp := getFeed(t, newHandler(db))

	if len(resp.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(resp.Items))
	}
	if resp.Items[0].Post.ID != newer.ID || resp.Items[1].Post.ID != older.ID {
		t.Error("feed not ordered newest first")
	}
	if resp.Items[0].Author.Name != "Asha" {
		t.Errorf("author: got %q", resp.Items[0].Author.Name)
	}
	if resp.Items[0].Community.Name != feedquery.GeneralCommunityName {
		t.Errorf("general post community: got %q", resp.Items[0].Community.Name)
	}
	if resp.Items[1].Community.Name != "Robotics" {
		t.Errorf("community post: got %q", resp.Items[1].Community.Name)
	}
}

func TestServeFeed_OrphanedPostStillAppears(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	// Author id that does not exist in the users collection.
	fx.CreatePost(ctx, "orphan", primitive.NewObjectID(), nil)

	resp := getFeed(t, newHandler(db))

	if len(resp.Items) != 1 {
		t.Fatalf("items: got %d, want 1", len(resp.Items))
	}
	if resp.Items[0].Author.Name != feedquery.UnknownAuthorName {
		t.Errorf("author: got %q, want %q", resp.Items[0].Author.Name, feedquery.UnknownAuthorName)
	}
}

func TestServeFeed_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)

	resp := getFeed(t, newHandler(db))
	if resp.Items == nil {
		t.Fatal("items should decode as an empty array, not null")
	}
	if len(resp.Items) != 0 {
		t.Errorf("items: got %d, want 0", len(resp.Items))
	}
}
