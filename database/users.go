package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// InsertIfAbsent inserts u unless a user with the same username or email
// exists. It reports whether a document was created.
func (s *UserStore) InsertIfAbsent(ctx context.Context, u *models.User) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": u.Username},
		bson.M{"email": u.Email},
	}}
	update := bson.M{
		"$setOnInsert": bson.M{
			"username":  u.Username,
			"email":     u.Email,
			"password":  u.Password,
			"role":      u.Role,
			"createdAt": u.CreatedAt,
			"updatedAt": u.UpdatedAt,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)

	res, err := s.coll.UpdateOne(ctx, filter, update, opts)
	if utils.IsDuplicateKey(err) {
		// lost a race with a concurrent insert of the same username or email
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed user upsert: %w", err)
	}
	if res.UpsertedCount == 1 {
		if id, ok := res.UpsertedID.(bson.ObjectID); ok {
			u.ID = id
		}
		return true, nil
	}
	return false, nil
}
