package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strumhouse/strumhouse-main-sub001/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no payment row matches the lookup key.
var ErrNotFound = errors.New("payment not found")

// PaymentRepository is the read/write surface over payment rows.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	// GetByBookingID returns (nil, nil) when the booking has no payment row.
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	// Capture transitions the row for orderID to captured, recording the
	// gateway payment id. The update is conditional on the row not already
	// being captured; it returns false when another caller won the
	// transition, so at most one capture happens per gateway order.
	Capture(ctx context.Context, orderID, gatewayPaymentID string) (bool, error)
}

// MongoPaymentRepo implements PaymentRepository over the payments collection.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(db *mongo.Database) *MongoPaymentRepo {
	return &MongoPaymentRepo{coll: db.Collection("payments")}
}

func (repo *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (repo *MongoPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := repo.coll.FindOne(ctx, bson.M{"gateway_order_id": orderID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching payment for order %s: %w", orderID, err)
	}
	return &payment, nil
}

func (repo *MongoPaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := repo.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching payment for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}

func (repo *MongoPaymentRepo) Capture(ctx context.Context, orderID, gatewayPaymentID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"gateway_order_id": orderID,
		"status":           bson.M{"$ne": models.PaymentCaptured},
	}
	update := bson.M{"$set": bson.M{
		"status":             models.PaymentCaptured,
		"gateway_payment_id": gatewayPaymentID,
		"updated_at":         time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error capturing payment for order %s: %w", orderID, err)
	}
	return res.ModifiedCount > 0, nil
}
