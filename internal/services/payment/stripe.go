package payment

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

// stripeGateway fronts Stripe PaymentIntents. Amounts are converted to
// minor units (paise) before they reach the gateway.
type stripeGateway struct{}

// NewStripeGateway returns the production Gateway backed by Stripe.
// The secret key is read from STRIPE_SECRET_KEY.
func NewStripeGateway() Gateway {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &stripeGateway{}
}

func (g *stripeGateway) CreateOrder(ctx context.Context, amount float64) (*GatewayOrder, error) {
	receipt := "receipt_order_" + uuid.NewString()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyINR)),
	}
	params.AddMetadata("receipt", receipt)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	return &GatewayOrder{
		OrderRef: intent.ID,
		Amount:   intent.Amount,
		Currency: string(intent.Currency),
		Receipt:  receipt,
	}, nil
}
