// Package testutil provides the shared test database, fixtures, and
// request helpers used by store and handler tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var dbCounter int64

// SetupTestDB connects to the test MongoDB instance and returns a
// database unique to this test. The database is dropped and the
// client disconnected in cleanup. If no MongoDB is reachable the test
// is skipped, so the pure-logic suites still run everywhere.
//
// The URI comes from VITCONNECT_TEST_MONGO_URI, defaulting to
// mongodb://localhost:27017.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("VITCONNECT_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("skipping: cannot connect to test MongoDB at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("skipping: test MongoDB at %s not reachable: %v", uri, err)
	}

	n := atomic.AddInt64(&dbCounter, 1)
	db := client.Database(fmt.Sprintf("vitconnect_test_%d_%d", time.Now().UnixNano(), n))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a generous deadline for test
// database calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
