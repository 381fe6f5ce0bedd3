package repo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"ecommerce-services/internal/core/database"
)

// 需要真实 MongoDB：MONGO_URI=mongodb://localhost:27017 go test ./internal/repo/...
func mongoTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, 5*time.Second)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("repo_test_%d", time.Now().UnixNano()))
	require.NoError(t, database.EnsureUserIndexes(ctx, db, zap.NewNop()))
	require.NoError(t, database.EnsureProductIndexes(ctx, db, zap.NewNop()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoUserRepo(t *testing.T) {
	runUserRepoContract(t, NewMongoUserRepo(mongoTestDB(t)))
}

func TestMongoProductRepo(t *testing.T) {
	runProductRepoContract(t, NewMongoProductRepo(mongoTestDB(t)))
}

func TestMongoMalformedIDIsNotFound(t *testing.T) {
	r := NewMongoUserRepo(mongoTestDB(t))
	got, err := r.FindByID(context.Background(), "not-an-object-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}
