package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// GatewayClient creates a payment order at the hosted gateway for the given
// amount (major units). It returns the gateway order id and the client
// secret the frontend needs to complete the charge.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amount float64, currency string, metadata map[string]string) (orderID, clientSecret string, err error)
}

// StripeGateway implements GatewayClient with a PaymentIntent per order.
// The API key is set process-wide from config at startup.
type StripeGateway struct{}

func (StripeGateway) CreateOrder(ctx context.Context, amount float64, currency string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent.ID, intent.ClientSecret, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func nowUTC() time.Time { return time.Now().UTC() }
