package serviceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceRepository exposes the studio service catalog. The catalog is
// managed elsewhere; the engine reads it for reference checks and listings.
type ServiceRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	ListActive(ctx context.Context) ([]models.Service, error)
}

// MongoServiceRepo implements ServiceRepository over the services collection.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) *MongoServiceRepo {
	return &MongoServiceRepo{coll: db.Collection("services")}
}

func (repo *MongoServiceRepo) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"id": 1})
	err := repo.coll.FindOne(ctx, bson.M{"id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("error checking service %s: %w", id, err)
	}
	return true, nil
}

func (repo *MongoServiceRepo) ListActive(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}
