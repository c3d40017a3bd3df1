package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjeev1695/billing-software/internal/config"
)

// setupTestDB connects to the test MongoDB and returns a dropped-clean
// database. Integration tests are skipped when MONGO_URI_TEST is not set.
func setupTestDB(t *testing.T, dbName string) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI_TEST")
	if uri == "" {
		t.Skip("MONGO_URI_TEST not set; skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err, "Failed to connect to MongoDB")

	db := client.Database(dbName)
	require.NoError(t, db.Drop(context.Background()), "Failed to drop test database")

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		MaxListLimit: 1000,
		ItemCacheTTL: time.Minute,
	}
}
