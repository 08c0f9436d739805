package blockedRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no block matches the given id.
var ErrNotFound = errors.New("blocked slot not found")

// BlockedRepository manages administrator-defined blackout intervals.
type BlockedRepository interface {
	Create(ctx context.Context, block *models.BlockedSlot) error
	// ListByDate returns every block on the date regardless of service scope;
	// callers decide which blocks apply to a given service.
	ListByDate(ctx context.Context, date string) ([]models.BlockedSlot, error)
	Delete(ctx context.Context, blockID string) error
}

// MongoBlockedRepo implements BlockedRepository over the blocked_slots
// collection.
type MongoBlockedRepo struct {
	coll *mongo.Collection
}

func NewMongoBlockedRepo(db *mongo.Database) *MongoBlockedRepo {
	return &MongoBlockedRepo{coll: db.Collection("blocked_slots")}
}

func (repo *MongoBlockedRepo) Create(ctx context.Context, block *models.BlockedSlot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("error creating blocked slot: %w", err)
	}
	return nil
}

func (repo *MongoBlockedRepo) ListByDate(ctx context.Context, date string) ([]models.BlockedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedSlot
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding blocked slots: %w", err)
	}
	return blocks, nil
}

func (repo *MongoBlockedRepo) Delete(ctx context.Context, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"block_id": blockID})
	if err != nil {
		return fmt.Errorf("error deleting blocked slot %s: %w", blockID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
