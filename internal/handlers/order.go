package handlers

import (
	"errors"
	"log"
	"strconv"

	"sanistore/internal/middleware"
	"sanistore/internal/models"
	"sanistore/internal/services/order"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create places an order from the request's item list or, when that is
// absent, from the caller's cart.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input models.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	created, err := h.orderService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidAddress):
			return response.BadRequest(c, "Invalid address selected")
		case errors.Is(err, order.ErrEmptyCart):
			return response.BadRequest(c, "Cart is empty")
		}
		log.Printf("error creating order for user %d: %v", userID, err)
		return response.ServerError(c, "Error creating order")
	}

	return response.Created(c, fiber.Map{"message": "Order placed successfully", "order": created})
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	orders, err := h.orderService.ListForUser(c.Context(), userID)
	if err != nil {
		log.Printf("error fetching orders for user %d: %v", userID, err)
		return response.ServerError(c, "Error fetching orders")
	}
	return response.Success(c, orders)
}

// UpdateStatus moves an order to a new status.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.orderService.UpdateStatus(c.Context(), uint(orderID), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingStatus):
			return response.BadRequest(c, "Status is required")
		case errors.Is(err, order.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		}
		log.Printf("error updating order %d status: %v", orderID, err)
		return response.ServerError(c, "Error updating order status")
	}

	return response.Success(c, fiber.Map{"message": "Order status updated", "order": updated})
}
