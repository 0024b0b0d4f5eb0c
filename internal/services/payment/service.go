// Package payment creates gateway orders and records verified payment
// attempts. The gateway itself is a black box behind the Gateway
// interface; capture mechanics live on the gateway side.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"sanistore/internal/models"
	"sanistore/internal/repositories"
)

var ErrInvalidSignature = errors.New("invalid signature")

// GatewayOrder is the gateway's handle for a payment attempt.
type GatewayOrder struct {
	OrderRef string `json:"order_ref"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Gateway creates payment orders with the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64) (*GatewayOrder, error)
}

// VerifyInput is the callback payload from the frontend after the
// gateway checkout completes.
type VerifyInput struct {
	OrderRef  string  `json:"gateway_order_id"`
	PaymentID string  `json:"gateway_payment_id"`
	Signature string  `json:"gateway_signature"`
	OrderID   uint    `json:"order_id"`
	Amount    float64 `json:"amount"`
}

type Service interface {
	CreateGatewayOrder(ctx context.Context, amount float64) (*GatewayOrder, error)
	ConfirmPayment(ctx context.Context, input VerifyInput) (*models.Payment, error)
}

type service struct {
	gateway     Gateway
	paymentRepo repositories.PaymentRepository
	secret      string
}

func NewService(gateway Gateway, paymentRepo repositories.PaymentRepository, secret string) Service {
	return &service{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		secret:      secret,
	}
}

func (s *service) CreateGatewayOrder(ctx context.Context, amount float64) (*GatewayOrder, error) {
	return s.gateway.CreateOrder(ctx, amount)
}

// verifySignature checks the HMAC-SHA256 of "<orderRef>|<paymentID>"
// under the gateway secret.
func (s *service) verifySignature(orderRef, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ConfirmPayment verifies the gateway signature and, only on success,
// stores the payment row and marks the order paid.
func (s *service) ConfirmPayment(ctx context.Context, input VerifyInput) (*models.Payment, error) {
	if !s.verifySignature(input.OrderRef, input.PaymentID, input.Signature) {
		return nil, ErrInvalidSignature
	}

	payment := &models.Payment{
		OrderID:   input.OrderID,
		OrderRef:  input.OrderRef,
		PaymentID: input.PaymentID,
		Signature: input.Signature,
		Amount:    input.Amount,
		Status:    "success",
	}
	if err := s.paymentRepo.CreateAndMarkPaid(payment); err != nil {
		return nil, err
	}
	return payment, nil
}
