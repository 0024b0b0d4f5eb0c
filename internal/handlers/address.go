package handlers

import (
	"errors"
	"log"
	"strconv"

	"sanistore/internal/middleware"
	"sanistore/internal/models"
	"sanistore/internal/services/delivery"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AddressHandler struct {
	deliveryService delivery.Service
}

func NewAddressHandler(deliveryService delivery.Service) *AddressHandler {
	return &AddressHandler{deliveryService: deliveryService}
}

// Create saves a new address. Unknown pincodes are registered with the
// default delivery price.
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input models.AddressInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	address, err := h.deliveryService.CreateAddress(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, delivery.ErrMissingFields) {
			return response.BadRequest(c, "House, street, city, label, and pincode are required")
		}
		log.Printf("error creating address for user %d: %v", userID, err)
		return response.ServerError(c, "Error creating address")
	}
	return response.Created(c, fiber.Map{"message": "Address created", "address": address})
}

// List returns the caller's addresses with their delivery prices.
func (h *AddressHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	addresses, err := h.deliveryService.ListAddresses(c.Context(), userID)
	if err != nil {
		log.Printf("error fetching addresses for user %d: %v", userID, err)
		return response.ServerError(c, "Error fetching addresses")
	}
	return response.Success(c, addresses)
}

// Update modifies an owned address. City changes must stay inside the
// service area.
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid address ID")
	}

	var input models.AddressInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	address, err := h.deliveryService.UpdateAddress(c.Context(), userID, uint(addressID), input)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrAddressNotFound):
			return response.NotFound(c, "Address not found")
		case errors.Is(err, delivery.ErrCityNotAllowed):
			return response.BadRequest(c, "City must be one of: Panchkula, Mohali, Chandigarh")
		}
		log.Printf("error updating address %d: %v", addressID, err)
		return response.ServerError(c, "Error updating address")
	}
	return response.Success(c, fiber.Map{"message": "Address updated", "address": address})
}

// Delete removes an owned address unless an order references it.
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid address ID")
	}

	if err := h.deliveryService.DeleteAddress(c.Context(), userID, uint(addressID)); err != nil {
		switch {
		case errors.Is(err, delivery.ErrAddressNotFound):
			return response.NotFound(c, "Address not found")
		case errors.Is(err, delivery.ErrAddressInUse):
			return response.BadRequest(c, "Cannot delete address used in an order")
		}
		log.Printf("error deleting address %d: %v", addressID, err)
		return response.ServerError(c, "Error deleting address")
	}
	return response.Message(c, "Address deleted")
}

// PriceForPincode resolves a postal code to its delivery price,
// registering first-time codes with the default.
func (h *AddressHandler) PriceForPincode(c *fiber.Ctx) error {
	code, err := strconv.Atoi(c.Params("pincode"))
	if err != nil || code <= 0 {
		return response.BadRequest(c, "Invalid pincode")
	}

	pincode, existed, err := h.deliveryService.PriceForPincode(c.Context(), code)
	if err != nil {
		log.Printf("error resolving pincode %d: %v", code, err)
		return response.ServerError(c, "Error fetching delivery price")
	}

	return response.Success(c, fiber.Map{
		"pincode":        pincode.Code,
		"delivery_price": pincode.DeliveryPrice,
		"found":          existed,
	})
}

// PriceForAddress returns the delivery price of an owned address.
func (h *AddressHandler) PriceForAddress(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	addressID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid address ID")
	}

	address, err := h.deliveryService.PriceForAddress(c.Context(), userID, uint(addressID))
	if err != nil {
		if errors.Is(err, delivery.ErrAddressNotFound) {
			return response.NotFound(c, "Address not found")
		}
		log.Printf("error resolving address %d: %v", addressID, err)
		return response.ServerError(c, "Error fetching delivery price")
	}

	var price float64 = models.DefaultDeliveryPrice
	if address.Pincode != nil {
		price = address.Pincode.DeliveryPrice
	}
	return response.Success(c, fiber.Map{
		"address_id":     address.ID,
		"delivery_price": price,
	})
}
