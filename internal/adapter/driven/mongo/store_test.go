package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ericfisherdev/passop/internal/domain/model"
)

func TestKeyFilter(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		key  model.CredentialKey
		want bson.M
	}{
		{
			name: "site and username only",
			key:  model.CredentialKey{Site: "a.com", Username: "u"},
			want: bson.M{"site": "a.com", "username": "u"},
		},
		{
			name: "uuid id",
			key:  model.CredentialKey{ID: "6f1c2b8e-6a7e-4c59-9f0e-0b1f2c3d4e5f", Site: "a.com", Username: "u"},
			want: bson.M{"site": "a.com", "username": "u", "_id": "6f1c2b8e-6a7e-4c59-9f0e-0b1f2c3d4e5f"},
		},
		{
			name: "object id hex matches both forms",
			key:  model.CredentialKey{ID: oid.Hex(), Site: "a.com", Username: "u"},
			want: bson.M{"site": "a.com", "username": "u", "_id": bson.M{"$in": bson.A{oid.Hex(), oid}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyFilter(tt.key))
		})
	}
}

func TestFromDocument(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		doc  bson.M
		want model.Credential
	}{
		{
			name: "string id",
			doc:  bson.M{"_id": "abc", "site": "a.com", "username": "u", "password": "p"},
			want: model.Credential{ID: "abc", Site: "a.com", Username: "u", Password: "p"},
		},
		{
			name: "object id from another writer",
			doc:  bson.M{"_id": oid, "site": "a.com", "username": "u", "password": "p"},
			want: model.Credential{ID: oid.Hex(), Site: "a.com", Username: "u", Password: "p"},
		},
		{
			name: "missing and mistyped fields",
			doc:  bson.M{"_id": "abc", "site": int32(7)},
			want: model.Credential{ID: "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fromDocument(tt.doc))
		})
	}
}

// setupTestStore connects to the server named by PASSOP_TEST_MONGO_URI and
// uses a throwaway collection. Tests are skipped when the variable is unset.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("PASSOP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PASSOP_TEST_MONGO_URI not set")
	}

	store, err := Connect(Options{
		URI:        uri,
		Database:   "passop_test",
		Collection: "credentials_" + uuid.New().String(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, store.Ping(ctx))

	t.Cleanup(func() {
		_ = store.coll.Drop(context.Background())
		_ = store.Close(context.Background())
	})

	return store
}

func TestStore_Lifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	inserted, err := store.Insert(ctx, model.Credential{Site: "a.com", Username: "u", Password: "p1"})
	require.NoError(t, err)
	assert.NotEmpty(t, inserted.InsertedID)

	creds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, model.Credential{ID: inserted.InsertedID, Site: "a.com", Username: "u", Password: "p1"}, creds[0])

	key := model.CredentialKey{Site: "a.com", Username: "u"}

	result, err := store.UpdatePassword(ctx, key, "p2")
	require.NoError(t, err)
	assert.Equal(t, model.UpdateResult{Matched: 1, Modified: 1}, result)

	result, err = store.UpdatePassword(ctx, key, "p2")
	require.NoError(t, err)
	assert.Equal(t, model.UpdateResult{Matched: 1, Modified: 0}, result, "same value is not a modification")

	deleted, err := store.Delete(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.Delete(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	creds, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestStore_IDNarrowsDuplicates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, model.Credential{Site: "a.com", Username: "u", Password: "p1"})
	require.NoError(t, err)
	second, err := store.Insert(ctx, model.Credential{Site: "a.com", Username: "u", Password: "p2"})
	require.NoError(t, err)

	key := model.CredentialKey{ID: second.InsertedID, Site: "a.com", Username: "u"}
	result, err := store.UpdatePassword(ctx, key, "p3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Modified)

	creds, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 2)
	byID := map[string]string{}
	for _, c := range creds {
		byID[c.ID] = c.Password
	}
	assert.Equal(t, "p3", byID[second.InsertedID])
}
