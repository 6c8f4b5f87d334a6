// Package mongo implements the credential store on a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ericfisherdev/passop/internal/domain/model"
	"github.com/ericfisherdev/passop/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Defaults used when the configuration leaves database or collection empty.
const (
	DefaultDatabase   = "password-op"
	DefaultCollection = "documents"
)

// Store is the MongoDB implementation of the CredentialStore port interface.
// It owns its client; callers release it with Close.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// Options configures Connect.
type Options struct {
	URI        string
	Database   string
	Collection string
	Logger     *slog.Logger
}

// Connect creates a client for opts.URI. The driver connects lazily, so a
// successful return does not imply the server is reachable; use Ping.
func Connect(opts Options) (*Store, error) {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client, err := mongo.Connect(options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		logger: opts.Logger.With("database", opts.Database, "collection", opts.Collection),
	}, nil
}

// List returns every document of the collection in natural order.
func (s *Store) List(ctx context.Context) ([]model.Credential, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find credentials: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var creds []model.Credential
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode credential: %w", err)
		}
		creds = append(creds, fromDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return creds, nil
}

// Insert stores cred as a new document. The document _id is a generated
// UUID string unless cred already carries one.
func (s *Store) Insert(ctx context.Context, cred model.Credential) (model.InsertResult, error) {
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}

	if _, err := s.coll.InsertOne(ctx, cred); err != nil {
		return model.InsertResult{}, fmt.Errorf("insertOne: %w", err)
	}

	return model.InsertResult{InsertedID: cred.ID}, nil
}

// UpdatePassword runs updateOne with $set on the password field and reports
// the driver's matched and modified counts.
func (s *Store) UpdatePassword(ctx context.Context, key model.CredentialKey, password string) (model.UpdateResult, error) {
	res, err := s.coll.UpdateOne(ctx, keyFilter(key), bson.M{"$set": bson.M{"password": password}})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("updateOne: %w", err)
	}

	s.logger.Debug("updateOne", "matched", res.MatchedCount, "modified", res.ModifiedCount)

	return model.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// Delete runs deleteOne on the first document matching key.
func (s *Store) Delete(ctx context.Context, key model.CredentialKey) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return 0, fmt.Errorf("deleteOne: %w", err)
	}

	return res.DeletedCount, nil
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client. A context without deadline gets 5 seconds.
func (s *Store) Close(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	return s.client.Disconnect(ctx)
}

// keyFilter builds the match filter for key. Documents inserted by other
// tools may carry ObjectID keys; a 24-hex ID matches either representation.
func keyFilter(key model.CredentialKey) bson.M {
	filter := bson.M{"site": key.Site, "username": key.Username}
	if key.ID == "" {
		return filter
	}

	if oid, err := bson.ObjectIDFromHex(key.ID); err == nil {
		filter["_id"] = bson.M{"$in": bson.A{key.ID, oid}}
	} else {
		filter["_id"] = key.ID
	}
	return filter
}

// fromDocument maps a loosely-structured document onto a Credential.
// Missing or non-string fields decode as empty strings.
func fromDocument(doc bson.M) model.Credential {
	return model.Credential{
		ID:       idString(doc["_id"]),
		Site:     stringField(doc, "site"),
		Username: stringField(doc, "username"),
		Password: stringField(doc, "password"),
	}
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case bson.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}

func stringField(doc bson.M, name string) string {
	if s, ok := doc[name].(string); ok {
		return s
	}
	return ""
}
