package handlers

import (
	"errors"
	"log"
	"strconv"

	"sanistore/internal/middleware"
	"sanistore/internal/models"
	"sanistore/internal/repositories"
	"sanistore/internal/utils/response"
	"sanistore/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartHandler struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartHandler(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartHandler {
	return &CartHandler{cartRepo: cartRepo, productRepo: productRepo}
}

// Add puts a product in the caller's cart. Adding a product already in
// the cart increments its quantity instead of creating a second row.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	v := validation.New()
	v.CartAdd(input.ProductID, input.Quantity)
	if !v.Valid() {
		return response.BadRequest(c, v.FirstError())
	}

	if _, err := h.productRepo.GetByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Product not found")
		}
		log.Printf("error fetching product %d: %v", input.ProductID, err)
		return response.ServerError(c, "Error adding to cart")
	}

	item, err := h.cartRepo.GetItem(userID, input.ProductID)
	switch {
	case err == nil:
		item.Quantity += input.Quantity
		if err := h.cartRepo.Save(item); err != nil {
			log.Printf("error updating cart item %d: %v", item.ID, err)
			return response.ServerError(c, "Error adding to cart")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &models.CartItem{
			UserID:    userID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		}
		if err := h.cartRepo.Create(item); err != nil {
			log.Printf("error creating cart item: %v", err)
			return response.ServerError(c, "Error adding to cart")
		}
	default:
		log.Printf("error reading cart: %v", err)
		return response.ServerError(c, "Error adding to cart")
	}

	loaded, err := h.cartRepo.GetLoaded(item.ID)
	if err != nil {
		log.Printf("error reloading cart item %d: %v", item.ID, err)
		return response.ServerError(c, "Error adding to cart")
	}
	return response.Created(c, fiber.Map{"message": "Added to cart", "item": loaded})
}

// List returns the caller's cart with product details.
func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	items, err := h.cartRepo.ListForUser(userID)
	if err != nil {
		log.Printf("error fetching cart for user %d: %v", userID, err)
		return response.ServerError(c, "Error fetching cart")
	}
	return response.Success(c, items)
}

// Remove decrements the quantity for a product, deleting the row when
// it reaches zero. The path parameter is the product id.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	item, err := h.cartRepo.GetItem(userID, uint(productID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Item not in cart")
		}
		log.Printf("error reading cart: %v", err)
		return response.ServerError(c, "Error removing from cart")
	}

	if item.Quantity > 1 {
		item.Quantity--
		if err := h.cartRepo.Save(item); err != nil {
			log.Printf("error updating cart item %d: %v", item.ID, err)
			return response.ServerError(c, "Error removing from cart")
		}
		return response.Success(c, fiber.Map{"message": "Quantity decreased", "item": item})
	}

	if _, err := h.cartRepo.DeleteProduct(userID, uint(productID)); err != nil {
		log.Printf("error deleting cart item: %v", err)
		return response.ServerError(c, "Error removing from cart")
	}
	return response.Message(c, "Item removed from cart")
}

// RemoveAll deletes every cart row for a product regardless of
// quantity. The path parameter is the product id.
func (h *CartHandler) RemoveAll(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	productID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	deleted, err := h.cartRepo.DeleteProduct(userID, uint(productID))
	if err != nil {
		log.Printf("error deleting cart items: %v", err)
		return response.ServerError(c, "Error removing from cart")
	}
	if deleted == 0 {
		return response.NotFound(c, "Item not in cart")
	}
	return response.Message(c, "Item removed from cart")
}
