package repo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a live server only when MONGO_URI is set.
func TestMongoTaskRepoContract(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	dbName := "todolist_test_" + uuid.NewString()[:8]
	r := NewMongoTaskRepo(client, dbName, "task")
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = r.Close(context.Background())
	})

	testTaskRepoContract(t, r, primitive.NewObjectID().Hex())

	exists, err := r.ExistsByID(ctx, "xxx")
	require.NoError(t, err)
	require.False(t, exists)

	precise := sampleTask("precise")
	precise.CreationDate = ptr(time.Date(2024, 1, 2, 2, 2, 0, 123456789, time.UTC))
	saved, err := r.Save(ctx, precise)
	require.NoError(t, err)
	got, found, err := r.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, saved.CreationDate.Equal(*got.CreationDate), "saved %v, read %v", saved.CreationDate, got.CreationDate)
}

func TestTruncateToMillis(t *testing.T) {
	assert.Nil(t, truncateToMillis(nil))

	in := time.Date(2024, 1, 2, 2, 2, 0, 123456789, time.UTC)
	got := truncateToMillis(&in)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 2, 2, 2, 0, 123000000, time.UTC), *got)
	assert.Equal(t, 123456789, in.Nanosecond())
}
