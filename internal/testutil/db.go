// Package testutil provides shared helpers for store and handler tests: a
// real Mongo test database (skipped when none is configured), data fixtures,
// and request helpers.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/web-rebel/devlink/internal/app/system/indexes"
)

// EnvTestMongoURI names the environment variable that points store tests at
// a running MongoDB instance. Tests that need a database skip when it is
// unset, so the pure-logic suites still run everywhere.
const EnvTestMongoURI = "DEVLINK_TEST_MONGO_URI"

// SetupTestDB connects to the test Mongo instance and returns a database
// with a unique name and the app's indexes in place, so uniqueness
// violations surface the same way they do in production. The database is
// dropped and the client disconnected when the test finishes.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(EnvTestMongoURI)
	if uri == "" {
		t.Skipf("%s not set; skipping database test", EnvTestMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect: %v", err)
	}

	db := client.Database("devlink_test_" + primitive.NewObjectID().Hex())

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with the standard test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
