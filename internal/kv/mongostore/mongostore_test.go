package mongostore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
	"github.com/MrJamesThe3rd/zentracker/internal/kv/mongostore"
)

// Mock for the Collection interface.
type mockCollection struct {
	findOneFunc    func(ctx context.Context, filter interface{}) *mongo.SingleResult
	replaceOneFunc func(ctx context.Context, filter, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	deleteOneFunc  func(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
}

func (m *mockCollection) FindOne(ctx context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	return m.findOneFunc(ctx, filter)
}

func (m *mockCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	return m.replaceOneFunc(ctx, filter, replacement, opts...)
}

func (m *mockCollection) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return m.deleteOneFunc(ctx, filter)
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		result  *mongo.SingleResult
		want    string
		wantErr error
	}{
		{
			name:   "Found",
			result: mongo.NewSingleResultFromDocument(bson.D{{Key: "_id", Value: kv.KeyTheme}, {Key: "value", Value: []byte("dark")}}, nil, nil),
			want:   "dark",
		},
		{
			name:    "Missing",
			result:  mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil),
			wantErr: kv.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := &mockCollection{
				findOneFunc: func(_ context.Context, filter interface{}) *mongo.SingleResult {
					assert.Equal(t, bson.M{"_id": kv.KeyTheme}, filter)
					return tt.result
				},
			}

			got, err := mongostore.New(coll).Get(context.Background(), kv.KeyTheme)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStore_PutUpserts(t *testing.T) {
	var upsert bool

	coll := &mockCollection{
		replaceOneFunc: func(_ context.Context, filter, _ interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
			assert.Equal(t, bson.M{"_id": kv.KeyProfile}, filter)

			for _, o := range opts {
				if o.Upsert != nil {
					upsert = *o.Upsert
				}
			}

			return &mongo.UpdateResult{UpsertedCount: 1}, nil
		},
	}

	require.NoError(t, mongostore.New(coll).Put(context.Background(), kv.KeyProfile, []byte("{}")))
	assert.True(t, upsert)
}

func TestStore_DeleteError(t *testing.T) {
	coll := &mockCollection{
		deleteOneFunc: func(context.Context, interface{}) (*mongo.DeleteResult, error) {
			return nil, errors.New("connection reset")
		},
	}

	err := mongostore.New(coll).Delete(context.Background(), kv.KeyTransactions)
	assert.Error(t, err)
}

func TestStore_CloseWithoutClient(t *testing.T) {
	assert.NoError(t, mongostore.New(&mockCollection{}).Close())
}
