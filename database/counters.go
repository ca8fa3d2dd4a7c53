package database

import (
	"context"
	"fmt"

	"github.com/rozeen-shrestha/confession/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CounterStore struct {
	coll *mongo.Collection
}

// Next increments the named counter and returns the new value. The counter
// document is created on first use.
func (s *CounterStore) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("increment counter %s: %w", name, err)
	}
	return counter.Seq, nil
}
