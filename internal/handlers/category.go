package handlers

import (
	"errors"
	"log"
	"strconv"

	"sanistore/internal/models"
	"sanistore/internal/repositories"
	"sanistore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryHandler(categoryRepo repositories.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.GetAll()
	if err != nil {
		log.Printf("error fetching categories: %v", err)
		return response.ServerError(c, "Error fetching categories")
	}
	return response.Success(c, categories)
}

// Get returns a category with all of its products.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.categoryRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		log.Printf("error fetching category %d: %v", id, err)
		return response.ServerError(c, "Error fetching category")
	}

	products, err := h.categoryRepo.ProductsIn(uint(id))
	if err != nil {
		log.Printf("error fetching products for category %d: %v", id, err)
		return response.ServerError(c, "Error fetching category")
	}
	category.Products = products

	return response.Success(c, category)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := h.categoryRepo.Create(category); err != nil {
		log.Printf("error creating category: %v", err)
		return response.ServerError(c, "Error creating category")
	}

	return response.Created(c, fiber.Map{"success": true, "category": category})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.categoryRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		log.Printf("error fetching category %d: %v", id, err)
		return response.ServerError(c, "Error updating category")
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}

	if err := h.categoryRepo.Update(category); err != nil {
		log.Printf("error updating category %d: %v", id, err)
		return response.ServerError(c, "Error updating category")
	}
	return response.Success(c, category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}
	if err := h.categoryRepo.Delete(uint(id)); err != nil {
		log.Printf("error deleting category %d: %v", id, err)
		return response.ServerError(c, "Error deleting category")
	}
	return response.Message(c, "Category deleted")
}
