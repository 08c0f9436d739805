package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository exposes the read surface the booking engine needs on user
// accounts. Account writes belong to the hosted auth service.
type UserRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// MongoUserRepo implements UserRepository over the users collection.
type MongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection("users")}
}

func (repo *MongoUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"id": 1})
	err := repo.coll.FindOne(ctx, bson.M{"id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("error checking user %s: %w", id, err)
	}
	return true, nil
}
