package repo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	dom "github.com/boygear/toDoListWithWebFlux/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the stored shape of a task in the collection.
type taskDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  *string            `bson:"description,omitempty"`
	CreationDate *time.Time         `bson:"creationDate,omitempty"`
	TaskStatus   *string            `bson:"taskStatus,omitempty"`
}

func toDocument(t dom.Task) taskDocument {
	doc := taskDocument{
		Description:  t.Description,
		CreationDate: t.CreationDate,
	}
	if t.Title != nil {
		doc.Title = *t.Title
	}
	if t.TaskStatus != nil {
		s := string(*t.TaskStatus)
		doc.TaskStatus = &s
	}
	return doc
}

func (d taskDocument) toDomain() (dom.Task, error) {
	t := dom.Task{
		ID:           d.ID.Hex(),
		Title:        &d.Title,
		Description:  d.Description,
		CreationDate: d.CreationDate,
	}
	if d.TaskStatus != nil {
		st, err := dom.ParseTaskStatus(*d.TaskStatus)
		if err != nil {
			return dom.Task{}, fmt.Errorf("task %s: %w", t.ID, err)
		}
		t.TaskStatus = &st
	}
	return t, nil
}

func truncateToMillis(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := ts.Truncate(time.Millisecond)
	return &v
}

// MongoTaskRepo implements TaskRepo with a MongoDB collection. IDs are
// ObjectIDs in hex form; an ID that is not valid hex cannot exist.
type MongoTaskRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoTaskRepo returns a repo over database/collection of client.
func NewMongoTaskRepo(client *mongo.Client, database, collection string) *MongoTaskRepo {
	return &MongoTaskRepo{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Save stores t. BSON datetimes hold milliseconds, so the creation date is
// truncated before writing and the returned task matches what a later read
// yields.
func (r *MongoTaskRepo) Save(ctx context.Context, t dom.Task) (dom.Task, error) {
	t.CreationDate = truncateToMillis(t.CreationDate)
	doc := toDocument(t)
	if t.ID == "" {
		doc.ID = primitive.NewObjectID()
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return dom.Task{}, fmt.Errorf("mongo insert: %w", err)
		}
		t.ID = doc.ID.Hex()
		return t, nil
	}

	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return dom.Task{}, fmt.Errorf("mongo save: invalid id %q: %w", t.ID, err)
	}
	doc.ID = oid
	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return dom.Task{}, fmt.Errorf("mongo replace: %w", err)
	}
	return t, nil
}

func (r *MongoTaskRepo) FindByID(ctx context.Context, id string) (dom.Task, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return dom.Task{}, false, nil
	}
	var doc taskDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.Task{}, false, nil
	}
	if err != nil {
		return dom.Task{}, false, fmt.Errorf("mongo find: %w", err)
	}
	t, err := doc.toDomain()
	if err != nil {
		return dom.Task{}, false, err
	}
	return t, true, nil
}

// FindAll streams the collection through a cursor; the query runs when
// iteration starts.
func (r *MongoTaskRepo) FindAll(ctx context.Context) iter.Seq2[dom.Task, error] {
	return func(yield func(dom.Task, error) bool) {
		cur, err := r.coll.Find(ctx, bson.D{})
		if err != nil {
			yield(dom.Task{}, fmt.Errorf("mongo find all: %w", err))
			return
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var doc taskDocument
			if err := cur.Decode(&doc); err != nil {
				yield(dom.Task{}, fmt.Errorf("mongo decode: %w", err))
				return
			}
			t, err := doc.toDomain()
			if err != nil {
				yield(dom.Task{}, err)
				return
			}
			if !yield(t, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(dom.Task{}, fmt.Errorf("mongo cursor: %w", err))
		}
	}
}

func (r *MongoTaskRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongo count: %w", err)
	}
	return n > 0, nil
}

func (r *MongoTaskRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (r *MongoTaskRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
