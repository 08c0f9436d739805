package bookingRepo

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

// MongoBookingRepo implements BookingRepository over the bookings and slots
// collections.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		slotColl:    db.Collection("slots"),
	}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up idempotency key: %w", err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	return nil
}

func (repo *MongoBookingRepo) InsertSlots(ctx context.Context, slots []models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, s := range slots {
		docs[i] = s
	}
	if _, err := repo.slotColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error inserting slots: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) DeleteSlotsByBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.slotColl.DeleteMany(ctx, bson.M{"booking_id": bookingID}); err != nil {
		return fmt.Errorf("error deleting slots for booking %s: %w", bookingID, err)
	}
	return nil
}

// ConfirmedSlots resolves confirmed+paid booking ids for the service, then
// fetches their slot rows for the date. Two queries; the slot rows carry the
// denormalized service id so the second filter stays cheap.
func (repo *MongoBookingRepo) ConfirmedSlots(ctx context.Context, serviceID, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"service_id":     serviceID,
		"status":         models.StatusConfirmed,
		"payment_status": models.PaymentPaid,
	}
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding confirmed bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding booking id: %w", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	slotCursor, err := repo.slotColl.Find(ctx, bson.M{
		"booking_id": bson.M{"$in": ids},
		"date":       date,
	})
	if err != nil {
		return nil, fmt.Errorf("error finding slots: %w", err)
	}
	defer slotCursor.Close(ctx)

	var slots []models.Slot
	if err := slotCursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (repo *MongoBookingRepo) MarkConfirmedPaid(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":         models.StatusConfirmed,
		"payment_status": models.PaymentPaid,
		"updated_at":     time.Now().UTC(),
	}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error confirming booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}
