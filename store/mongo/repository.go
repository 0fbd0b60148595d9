// Package mongo implements task.Repository and probe.Pinger against a
// document store using mongo-driver/v2. It is the spec's "secondary"
// adapter: a thin CRUD wrapper over a single collection, stopping short of
// any document-modeling concerns spec.md §1 scopes out.
package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/lmorales/dualtask/task"
)

// taskDoc is the BSON shape stored per task, keyed by its canonical string
// id per spec.md §6 ("ids are persisted as their canonical textual form").
type taskDoc struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	State       string `bson:"state"`
}

// Repository is a mongo-driver-backed task.Repository. Callers own the
// *mongo.Client's lifecycle.
type Repository struct {
	collection *mongo.Collection
}

// New wraps an existing collection handle (client.Database(name).Collection("tasks")).
func New(collection *mongo.Collection) *Repository {
	return &Repository{collection: collection}
}

var _ task.Repository = (*Repository)(nil)

// Save upserts t by id.
func (r *Repository) Save(ctx context.Context, t task.Task) error {
	doc := taskDoc{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		State:       string(t.State),
	}
	opts := options.UpdateOne().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": doc.ID},
		bson.M{"$set": doc},
		opts,
	)
	return err
}

// Get looks up a Task by id, returning (nil, nil) on a miss per
// task.Repository's contract.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	var doc taskDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return docToTask(doc)
}

// List enumerates all tasks.
func (r *Repository) List(ctx context.Context) ([]task.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []task.Task
	for cursor.Next(ctx) {
		var doc taskDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		t, err := docToTask(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, cursor.Err()
}

// Delete removes a Task by id. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	return err
}

// Ping performs a minimal round trip against the owning client, satisfying
// probe.Pinger.
func (r *Repository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

func docToTask(doc taskDoc) (*task.Task, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, err
	}
	return &task.Task{
		ID:          id,
		Title:       doc.Title,
		Description: doc.Description,
		State:       task.State(doc.State),
	}, nil
}
