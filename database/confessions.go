package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rozeen-shrestha/confession/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ConfessionStore struct {
	coll *mongo.Collection
}

// Insert stores c and sets c.ID to the assigned id.
func (s *ConfessionStore) Insert(ctx context.Context, c *models.Confession) error {
	res, err := s.coll.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert confession: %w", err)
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		c.ID = id
	}
	return nil
}

func (s *ConfessionStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count confessions: %w", err)
	}
	return n, nil
}

// FindPage returns confessions newest first.
func (s *ConfessionStore) FindPage(ctx context.Context, skip, limit int64) ([]models.Confession, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find confessions: %w", err)
	}
	defer cursor.Close(ctx)

	confessions := make([]models.Confession, 0, limit)
	if err := cursor.All(ctx, &confessions); err != nil {
		return nil, fmt.Errorf("decode confessions: %w", err)
	}
	return confessions, nil
}

func (s *ConfessionStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Confession, error) {
	var c models.Confession
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find confession %s: %w", id.Hex(), err)
	}
	return &c, nil
}
