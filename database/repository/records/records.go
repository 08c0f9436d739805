package recordsRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SummaryRepository produces the admin rollups. Reads only; the snapshot is
// consistent enough, not transactional.
type SummaryRepository interface {
	Collect(ctx context.Context) (*models.AdminSummary, error)
}

// MongoSummaryRepo implements SummaryRepository with counts plus an
// aggregation over paid bookings for the revenue sum.
type MongoSummaryRepo struct {
	users    *mongo.Collection
	services *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoSummaryRepo(db *mongo.Database) *MongoSummaryRepo {
	return &MongoSummaryRepo{
		users:    db.Collection("users"),
		services: db.Collection("services"),
		bookings: db.Collection("bookings"),
	}
}

func (repo *MongoSummaryRepo) Collect(ctx context.Context) (*models.AdminSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	summary := &models.AdminSummary{GeneratedAt: time.Now().UTC()}

	var err error
	if summary.TotalUsers, err = repo.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	if summary.TotalServices, err = repo.services.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("error counting services: %w", err)
	}
	if summary.TotalBookings, err = repo.bookings.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}
	confirmedFilter := bson.M{"status": models.StatusConfirmed, "payment_status": models.PaymentPaid}
	if summary.ConfirmedBookings, err = repo.bookings.CountDocuments(ctx, confirmedFilter); err != nil {
		return nil, fmt.Errorf("error counting confirmed bookings: %w", err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "payment_status", Value: models.PaymentPaid}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
	}
	cursor, err := repo.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating revenue: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding revenue: %w", err)
		}
		summary.Revenue = row.Revenue
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return summary, nil
}
