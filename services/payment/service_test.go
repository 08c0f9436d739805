package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	paymentRepo "github.com/strumhouse/strumhouse-main-sub001/database/repository/payment"
	"github.com/strumhouse/strumhouse-main-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testSecret = "whsec_test"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakePaymentRepo struct {
	payments map[string]*models.Payment // keyed by gateway order id

	captureCalls int
	loseRace     bool
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	cp := *p
	f.payments[p.GatewayOrderID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	p, ok := f.payments[orderID]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) Capture(_ context.Context, orderID, paymentID string) (bool, error) {
	f.captureCalls++
	p, ok := f.payments[orderID]
	if !ok {
		return false, paymentRepo.ErrNotFound
	}
	if f.loseRace || p.Status == models.PaymentCaptured {
		return false, nil
	}
	p.Status = models.PaymentCaptured
	p.GatewayPaymentID = paymentID
	return true, nil
}

type fakeBookings struct {
	bookings map[string]*models.Booking

	markCalls int
	failMark  bool
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeBookings) GetByIdempotencyKey(_ context.Context, _ string) (*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) Delete(_ context.Context, id string) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookings) InsertSlots(_ context.Context, _ []models.Slot) error { return nil }

func (f *fakeBookings) DeleteSlotsByBooking(_ context.Context, _ string) error { return nil }

func (f *fakeBookings) ConfirmedSlots(_ context.Context, _, _ string) ([]models.Slot, error) {
	return nil, nil
}

func (f *fakeBookings) MarkConfirmedPaid(_ context.Context, id string) error {
	f.markCalls++
	if f.failMark {
		return errors.New("booking update refused")
	}
	b, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id)
	}
	b.Status = models.StatusConfirmed
	b.PaymentStatus = models.PaymentPaid
	return nil
}

type fakeGateway struct {
	orderID string
	err     error
}

func (f *fakeGateway) CreateOrder(_ context.Context, _ float64, _ string, _ map[string]string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return f.orderID, f.orderID + "_secret", nil
}

type fakeReconciler struct {
	enqueued []RepairPayload
}

func (f *fakeReconciler) EnqueueBookingRepair(_ context.Context, orderID, bookingID string) error {
	f.enqueued = append(f.enqueued, RepairPayload{OrderID: orderID, BookingID: bookingID})
	return nil
}

type recordedEvent struct {
	collection, op, id string
}

type fakeEvents struct {
	published []recordedEvent
}

func (f *fakeEvents) Publish(_ context.Context, collection, op, id string) {
	f.published = append(f.published, recordedEvent{collection, op, id})
}

func newConfirmFixture(t *testing.T) (*DefaultService, *fakePaymentRepo, *fakeBookings, *fakeReconciler, *fakeEvents) {
	t.Helper()
	payments := newFakePaymentRepo()
	bookings := newFakeBookings()
	reconciler := &fakeReconciler{}
	events := &fakeEvents{}

	bookings.bookings["bk-1"] = &models.Booking{
		ID:            "bk-1",
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		AdvanceAmount: 30,
	}
	payments.payments["order-1"] = &models.Payment{
		ID:             "pay-row-1",
		BookingID:      "bk-1",
		GatewayOrderID: "order-1",
		Status:         models.PaymentCreated,
	}

	svc := &DefaultService{
		Payments:   payments,
		Bookings:   bookings,
		Secret:     testSecret,
		Currency:   "usd",
		Events:     events,
		Reconciler: reconciler,
		Logger:     zap.NewNop(),
	}
	return svc, payments, bookings, reconciler, events
}

func TestConfirmSuccessTransitionsBoth(t *testing.T) {
	svc, payments, bookings, _, events := newConfirmFixture(t)

	res, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: sign("order-1", "pay_abc"),
	})
	require.NoError(t, err)
	assert.True(t, res.Verified)
	assert.False(t, res.AlreadyProcessed)
	assert.Equal(t, "bk-1", res.BookingID)
	assert.Equal(t, models.PaymentCaptured, res.Status)

	assert.Equal(t, models.PaymentCaptured, payments.payments["order-1"].Status)
	assert.Equal(t, "pay_abc", payments.payments["order-1"].GatewayPaymentID)
	assert.Equal(t, models.StatusConfirmed, bookings.bookings["bk-1"].Status)
	assert.Equal(t, models.PaymentPaid, bookings.bookings["bk-1"].PaymentStatus)

	require.Len(t, events.published, 2)
	assert.Equal(t, recordedEvent{"payments", "update", "pay-row-1"}, events.published[0])
	assert.Equal(t, recordedEvent{"bookings", "update", "bk-1"}, events.published[1])
}

func TestConfirmRejectsTamperedSignature(t *testing.T) {
	svc, payments, bookings, _, _ := newConfirmFixture(t)

	good := sign("order-1", "pay_abc")
	// Flip one hex digit.
	tampered := []byte(good)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	_, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: string(tampered),
	})
	var secErr *models.SecurityError
	require.ErrorAs(t, err, &secErr)

	assert.Equal(t, models.PaymentCreated, payments.payments["order-1"].Status)
	assert.Equal(t, models.StatusPending, bookings.bookings["bk-1"].Status)
	assert.Zero(t, payments.captureCalls, "rejected callbacks must not reach the store")
}

func TestConfirmSignatureForOtherPaymentRejected(t *testing.T) {
	svc, _, _, _, _ := newConfirmFixture(t)

	_, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: sign("order-1", "pay_other"),
	})
	var secErr *models.SecurityError
	require.ErrorAs(t, err, &secErr)
}

func TestConfirmReportsMissingFields(t *testing.T) {
	svc, _, _, _, _ := newConfirmFixture(t)

	_, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"orderId", "paymentId", "signature"}, validationErr.Missing)
}

func TestConfirmUnknownOrder(t *testing.T) {
	svc, _, _, _, _ := newConfirmFixture(t)

	_, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-missing",
		PaymentID: "pay_abc",
		Signature: sign("order-missing", "pay_abc"),
	})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "payment", notFound.Entity)
}

func TestConfirmSecondCallIsIdempotent(t *testing.T) {
	svc, payments, bookings, _, _ := newConfirmFixture(t)

	req := models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: sign("order-1", "pay_abc"),
	}
	first, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.AlreadyProcessed)

	second, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, "bk-1", second.BookingID)

	assert.Equal(t, 1, payments.captureCalls, "replay must short-circuit before the write")
	assert.Equal(t, 1, bookings.markCalls)
}

func TestConfirmLostRaceReportsAlreadyProcessed(t *testing.T) {
	svc, payments, bookings, _, _ := newConfirmFixture(t)
	payments.loseRace = true

	res, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: sign("order-1", "pay_abc"),
	})
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
	assert.Zero(t, bookings.markCalls, "the winning callback owns the booking update")
}

func TestConfirmBookingUpdateFailureEnqueuesRepair(t *testing.T) {
	svc, payments, bookings, reconciler, events := newConfirmFixture(t)
	bookings.failMark = true

	_, err := svc.Confirm(context.Background(), models.ConfirmPaymentRequest{
		OrderID:   "order-1",
		PaymentID: "pay_abc",
		Signature: sign("order-1", "pay_abc"),
	})
	var incErr *models.InconsistencyError
	require.ErrorAs(t, err, &incErr)
	assert.Equal(t, "booking_update", incErr.Step)
	assert.Equal(t, "bk-1", incErr.BookingID)
	assert.Equal(t, "order-1", incErr.OrderID)

	// Payment stays captured so the reconciler can finish the other half.
	assert.Equal(t, models.PaymentCaptured, payments.payments["order-1"].Status)
	require.Len(t, reconciler.enqueued, 1)
	assert.Equal(t, RepairPayload{OrderID: "order-1", BookingID: "bk-1"}, reconciler.enqueued[0])
	assert.Empty(t, events.published)
}

func TestInitiateCreatesPaymentRow(t *testing.T) {
	svc, payments, _, _, events := newConfirmFixture(t)
	delete(payments.payments, "order-1")
	svc.Gateway = &fakeGateway{orderID: "order-new"}

	res, err := svc.Initiate(context.Background(), models.InitiatePaymentRequest{BookingID: "bk-1"})
	require.NoError(t, err)
	assert.Equal(t, "order-new", res.OrderID)
	assert.Equal(t, "order-new_secret", res.ClientSecret)
	assert.Equal(t, 30.0, res.Amount)
	assert.Equal(t, "usd", res.Currency)

	stored := payments.payments["order-new"]
	require.NotNil(t, stored)
	assert.Equal(t, models.PaymentCreated, stored.Status)
	assert.Equal(t, "bk-1", stored.BookingID)
	require.Len(t, events.published, 1)
	assert.Equal(t, "payments", events.published[0].collection)
}

func TestInitiateUnknownBooking(t *testing.T) {
	svc, _, _, _, _ := newConfirmFixture(t)
	svc.Gateway = &fakeGateway{orderID: "order-new"}

	_, err := svc.Initiate(context.Background(), models.InitiatePaymentRequest{BookingID: "ghost"})
	var notFound *models.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "booking", notFound.Entity)
}

func TestInitiateRejectsSecondAttempt(t *testing.T) {
	svc, _, _, _, _ := newConfirmFixture(t)
	svc.Gateway = &fakeGateway{orderID: "order-new"}

	_, err := svc.Initiate(context.Background(), models.InitiatePaymentRequest{BookingID: "bk-1"})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "already initiated")
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	assert.True(t, verifySignature(testSecret, "o1", "p1", sign("o1", "p1")))
	assert.False(t, verifySignature(testSecret, "o1", "p1", sign("o1", "p2")))
	assert.False(t, verifySignature("other-secret", "o1", "p1", sign("o1", "p1")))
	assert.False(t, verifySignature(testSecret, "o1", "p1", ""))
}
