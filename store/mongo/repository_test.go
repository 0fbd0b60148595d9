package mongo

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lmorales/dualtask/task"
)

// newTestCollection requires TEST_MONGO_URI; skipped otherwise, the same
// environment-variable integration-test guard store/postgres uses.
func newTestCollection(t *testing.T) *mongo.Collection {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set, skipping mongo integration test")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo.Connect() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("dualtask_test").Collection("tasks")
}

func TestRepository_SaveGetRoundTrip(t *testing.T) {
	col := newTestCollection(t)
	repo := New(col)

	tk := task.New("integration title", "integration desc")
	if err := repo.Save(context.Background(), tk); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), tk.ID) })

	got, err := repo.Get(context.Background(), tk.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || *got != tk {
		t.Fatalf("Get() = %+v, want %+v", got, tk)
	}
}

func TestRepository_GetMissReturnsNilNil(t *testing.T) {
	col := newTestCollection(t)
	repo := New(col)

	got, err := repo.Get(context.Background(), task.New("x", "y").ID)
	if err != nil || got != nil {
		t.Fatalf("Get() = %v, %v, want nil, nil for a miss", got, err)
	}
}

func TestRepository_Ping(t *testing.T) {
	col := newTestCollection(t)
	repo := New(col)

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}
