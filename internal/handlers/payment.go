package handlers

import (
	"errors"
	"log"

	"sanistore/internal/services/payment"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrder opens a payment attempt with the gateway for the given
// amount and returns the gateway's order handle to the frontend.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}

	gatewayOrder, err := h.paymentService.CreateGatewayOrder(c.Context(), input.Amount)
	if err != nil {
		log.Printf("error creating gateway order: %v", err)
		return response.ServerError(c, "Error creating payment order")
	}
	return response.Success(c, gatewayOrder)
}

// Verify checks the gateway callback signature and marks the order
// paid on success.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var input payment.VerifyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.OrderRef == "" || input.PaymentID == "" || input.Signature == "" {
		return response.BadRequest(c, "Missing payment verification fields")
	}

	confirmed, err := h.paymentService.ConfirmPayment(c.Context(), input)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			return response.BadRequest(c, "Payment verification failed")
		}
		log.Printf("error confirming payment for order %d: %v", input.OrderID, err)
		return response.ServerError(c, "Error verifying payment")
	}

	return response.Success(c, fiber.Map{
		"message": "Payment verified successfully",
		"payment": confirmed,
	})
}
