package handlers

import (
	"log"

	"sanistore/internal/middleware"
	"sanistore/internal/models"
	"sanistore/internal/repositories"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// LocationHandler exposes the service-area flag on the profile.
type LocationHandler struct {
	userRepo repositories.UserRepository
}

func NewLocationHandler(userRepo repositories.UserRepository) *LocationHandler {
	return &LocationHandler{userRepo: userRepo}
}

// IsTricity reports whether the caller is inside the delivery area.
func (h *LocationHandler) IsTricity(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, fiber.Map{
		"is_tricity": user.IsTricity,
		"city":       user.City,
	})
}

// SetTricity re-derives the flag from a city name and stores both.
func (h *LocationHandler) SetTricity(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		City string `json:"city"`
	}
	if err := c.BodyParser(&input); err != nil || input.City == "" {
		return response.BadRequest(c, "City is required")
	}

	user.City = input.City
	user.IsTricity = models.IsTricityCity(input.City)
	if err := h.userRepo.Update(user); err != nil {
		log.Printf("error updating location for user %d: %v", user.ID, err)
		return response.ServerError(c, "Error updating location")
	}

	return response.Success(c, fiber.Map{
		"is_tricity": user.IsTricity,
		"city":       user.City,
	})
}
