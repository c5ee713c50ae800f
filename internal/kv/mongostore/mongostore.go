// Package mongostore persists slots as documents in a MongoDB collection,
// one document per slot keyed by _id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
)

const collectionName = "slots"

// Collection is the subset of *mongo.Collection the store uses.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type slotDocument struct {
	Name  string `bson:"_id"`
	Value []byte `bson:"value"`
}

type Store struct {
	coll   Collection
	client *mongo.Client
}

// New wraps an existing collection. Close is a no-op for stores built this way.
func New(coll Collection) *Store {
	return &Store{coll: coll}
}

// Connect dials MongoDB and returns a store over database.slots.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	slog.DebugContext(ctx, "connecting to mongodb", "database", database)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Store{
		coll:   client.Database(database).Collection(collectionName),
		client: client,
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc slotDocument

	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("reading slot %s: %w", key, err)
	}

	return doc.Value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		slotDocument{Name: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}

	return s.client.Disconnect(context.Background())
}
