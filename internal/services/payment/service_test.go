package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"sanistore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount float64) (*GatewayOrder, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayOrder), args.Error(1)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreateAndMarkPaid(payment *models.Payment) error {
	return m.Called(payment).Error(0)
}

func sign(secret, orderRef, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateGatewayOrder(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("CreateOrder", mock.Anything, 499.0).Return(&GatewayOrder{
		OrderRef: "pi_123",
		Amount:   49900,
		Currency: "inr",
	}, nil)

	svc := NewService(gateway, new(MockPaymentRepo), "secret")
	gatewayOrder, err := svc.CreateGatewayOrder(context.Background(), 499.0)

	assert.NoError(t, err)
	assert.Equal(t, "pi_123", gatewayOrder.OrderRef)
	assert.Equal(t, int64(49900), gatewayOrder.Amount)
}

func TestConfirmPayment(t *testing.T) {
	const secret = "gateway-secret"

	t.Run("valid signature stores and marks paid", func(t *testing.T) {
		repo := new(MockPaymentRepo)
		var stored *models.Payment
		repo.On("CreateAndMarkPaid", mock.AnythingOfType("*models.Payment")).
			Run(func(args mock.Arguments) { stored = args.Get(0).(*models.Payment) }).
			Return(nil)

		svc := NewService(new(MockGateway), repo, secret)
		confirmed, err := svc.ConfirmPayment(context.Background(), VerifyInput{
			OrderRef:  "pi_123",
			PaymentID: "pay_456",
			Signature: sign(secret, "pi_123", "pay_456"),
			OrderID:   9,
			Amount:    499.0,
		})

		assert.NoError(t, err)
		assert.Equal(t, "success", confirmed.Status)
		assert.Equal(t, uint(9), stored.OrderID)
		assert.Equal(t, "pi_123", stored.OrderRef)
		repo.AssertExpectations(t)
	})

	t.Run("tampered signature is rejected", func(t *testing.T) {
		repo := new(MockPaymentRepo)
		svc := NewService(new(MockGateway), repo, secret)

		_, err := svc.ConfirmPayment(context.Background(), VerifyInput{
			OrderRef:  "pi_123",
			PaymentID: "pay_456",
			Signature: sign("wrong-secret", "pi_123", "pay_456"),
			OrderID:   9,
		})

		assert.ErrorIs(t, err, ErrInvalidSignature)
		repo.AssertNotCalled(t, "CreateAndMarkPaid", mock.Anything)
	})

	t.Run("signature bound to the payment id", func(t *testing.T) {
		repo := new(MockPaymentRepo)
		svc := NewService(new(MockGateway), repo, secret)

		_, err := svc.ConfirmPayment(context.Background(), VerifyInput{
			OrderRef:  "pi_123",
			PaymentID: "pay_other",
			Signature: sign(secret, "pi_123", "pay_456"),
			OrderID:   9,
		})

		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}
