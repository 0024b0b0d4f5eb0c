package handlers

import (
	"log"

	"sanistore/internal/repositories"
	"sanistore/internal/services/delivery"
	"sanistore/internal/utils/pagination"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back-office dashboard: user and order
// listings, aggregate stats, and pincode pricing management.
type AdminHandler struct {
	userRepo        repositories.UserRepository
	orderRepo       repositories.OrderRepository
	productRepo     repositories.ProductRepository
	deliveryService delivery.Service
}

func NewAdminHandler(
	userRepo repositories.UserRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	deliveryService delivery.Service,
) *AdminHandler {
	return &AdminHandler{
		userRepo:        userRepo,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		deliveryService: deliveryService,
	}
}

// Users lists accounts without password hashes.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, 20, 100)

	users, err := h.userRepo.List(p.Limit, p.Offset)
	if err != nil {
		log.Printf("error listing users: %v", err)
		return response.ServerError(c, "Error fetching users")
	}
	total, err := h.userRepo.Count()
	if err != nil {
		log.Printf("error counting users: %v", err)
		return response.ServerError(c, "Error fetching users")
	}
	p.Total = total

	return response.Success(c, fiber.Map{
		"users":      users,
		"pagination": pagination.Meta(p),
	})
}

// Orders lists orders not yet delivered, newest first.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, 20, 100)

	orders, total, err := h.orderRepo.ListUndelivered(p.Limit, p.Offset)
	if err != nil {
		log.Printf("error listing orders: %v", err)
		return response.ServerError(c, "Error fetching orders")
	}
	p.Total = total

	return response.Success(c, fiber.Map{
		"orders":     orders,
		"pagination": pagination.Meta(p),
	})
}

// DashboardStats returns the headline counts and revenue sum. The sum
// is zero, not null, with no orders.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	users, err := h.userRepo.Count()
	if err != nil {
		log.Printf("error counting users: %v", err)
		return response.ServerError(c, "Error fetching stats")
	}
	products, err := h.productRepo.Count()
	if err != nil {
		log.Printf("error counting products: %v", err)
		return response.ServerError(c, "Error fetching stats")
	}
	orders, err := h.orderRepo.Count()
	if err != nil {
		log.Printf("error counting orders: %v", err)
		return response.ServerError(c, "Error fetching stats")
	}
	revenue, err := h.orderRepo.SumTotals()
	if err != nil {
		log.Printf("error summing order totals: %v", err)
		return response.ServerError(c, "Error fetching stats")
	}

	return response.Success(c, fiber.Map{
		"total_users":    users,
		"total_products": products,
		"total_orders":   orders,
		"total_revenue":  revenue,
	})
}

// UpsertPincode sets the delivery price for a postal code, creating
// the row if needed.
func (h *AdminHandler) UpsertPincode(c *fiber.Ctx) error {
	var input struct {
		Pincode       int     `json:"pincode"`
		DeliveryPrice float64 `json:"delivery_price"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Pincode <= 0 {
		return response.BadRequest(c, "Valid pincode is required")
	}
	if input.DeliveryPrice < 0 {
		return response.BadRequest(c, "Delivery price cannot be negative")
	}

	pincode, err := h.deliveryService.UpsertPincode(c.Context(), input.Pincode, input.DeliveryPrice)
	if err != nil {
		log.Printf("error upserting pincode %d: %v", input.Pincode, err)
		return response.ServerError(c, "Error saving pincode")
	}

	return response.Success(c, fiber.Map{
		"message": "Pincode saved",
		"pincode": pincode,
	})
}

// Pincodes lists known postal codes ordered by code.
func (h *AdminHandler) Pincodes(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, 50, 200)

	pincodes, total, err := h.deliveryService.ListPincodes(c.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Printf("error listing pincodes: %v", err)
		return response.ServerError(c, "Error fetching pincodes")
	}
	p.Total = total

	return response.Success(c, fiber.Map{
		"pincodes":   pincodes,
		"pagination": pagination.Meta(p),
	})
}
