package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

const (
	UsersCollection       = "users"
	ConfessionsCollection = "confessions"
	CountersCollection    = "counters"
)

// ErrNotFound is returned by lookups that match no document.
var ErrNotFound = errors.New("document not found")

// DB owns the process-wide client. Collections are handed out from it so
// every repository shares one connection pool.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

func Connect(ctx context.Context, uri, name string, log *zap.Logger) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Info("connected to mongodb", zap.String("database", name))

	return &DB{client: client, db: client.Database(name), log: log}, nil
}

func (d *DB) OpenCollection(collectionName string) *mongo.Collection {
	return d.db.Collection(collectionName)
}

func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every start.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.OpenCollection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = d.OpenCollection(ConfessionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("create confessions index: %w", err)
	}
	d.log.Debug("indexes ensured")
	return nil
}

func (d *DB) Confessions() *ConfessionStore {
	return &ConfessionStore{coll: d.OpenCollection(ConfessionsCollection)}
}

func (d *DB) Users() *UserStore {
	return &UserStore{coll: d.OpenCollection(UsersCollection)}
}

func (d *DB) Counters() *CounterStore {
	return &CounterStore{coll: d.OpenCollection(CountersCollection)}
}
