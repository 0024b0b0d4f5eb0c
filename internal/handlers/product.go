package handlers

import (
	"errors"
	"log"
	"strconv"

	"sanistore/internal/models"
	"sanistore/internal/repositories"
	"sanistore/internal/utils/pagination"
	"sanistore/internal/utils/response"
	"sanistore/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxProductLimit = 50 // hard cap for the main listing
	maxSimpleLimit  = 20 // hard cap for the lightweight listing
)

type ProductHandler struct {
	productRepo repositories.ProductRepository
}

func NewProductHandler(productRepo repositories.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

func parseBoolQuery(c *fiber.Ctx, name string) *bool {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	b := val == "true"
	return &b
}

// List returns a filtered, paginated product listing.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := models.ProductFilter{
		Search:       c.Query("search"),
		IsFeatured:   parseBoolQuery(c, "isFeatured"),
		IsBestseller: parseBoolQuery(c, "isBestseller"),
		IsPipe:       parseBoolQuery(c, "isPipe"),
		SortBy:       c.Query("sortBy", "created_at"),
		SortOrder:    c.Query("sortOrder", "desc"),
	}
	// Both spellings of the category filter are accepted.
	if id, err := strconv.ParseUint(c.Query("category", c.Query("categoryId")), 10, 32); err == nil {
		filter.CategoryID = uint(id)
	}

	p := pagination.ParseFromRequest(c, 10, maxProductLimit)

	products, total, err := h.productRepo.List(filter, p.Limit, p.Offset)
	if err != nil {
		log.Printf("error fetching products: %v", err)
		return response.ServerError(c, "Error fetching products")
	}
	p.Total = total

	return response.Success(c, fiber.Map{
		"products":   products,
		"pagination": pagination.Meta(p),
	})
}

// ListSimple is the lightweight listing kept for backward
// compatibility with older frontend builds.
func (h *ProductHandler) ListSimple(c *fiber.Ctx) error {
	var categoryID uint
	if id, err := strconv.ParseUint(c.Query("categoryId"), 10, 32); err == nil {
		categoryID = uint(id)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > maxSimpleLimit {
		limit = maxSimpleLimit
	}

	products, err := h.productRepo.ListSimple(categoryID, c.Query("search"), limit)
	if err != nil {
		log.Printf("error fetching products: %v", err)
		return response.ServerError(c, "Error fetching products")
	}
	return response.Success(c, products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	product, err := h.productRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Product not found")
		}
		log.Printf("error fetching product %d: %v", id, err)
		return response.ServerError(c, "Error fetching product")
	}
	return response.Success(c, product)
}

func imageURLsFrom(input *models.ProductInput) []string {
	if len(input.Images) > 0 {
		return input.Images
	}
	return input.ImageURLs
}

// Create inserts a product and its image rows. ItemCode is generated
// when the catalog feed omits it.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.ProductCreate(&input)
	if !v.Valid() {
		return response.BadRequest(c, "Name and category_id are required")
	}

	product := &models.Product{
		Name:       *input.Name,
		CategoryID: *input.CategoryID,
		ItemCode:   "ITEM-" + uuid.NewString(),
	}
	applyProductInput(product, &input)

	if err := h.productRepo.Create(product, imageURLsFrom(&input)); err != nil {
		log.Printf("error creating product: %v", err)
		return response.ServerError(c, "Error creating product")
	}

	created, err := h.productRepo.GetByID(product.ID)
	if err != nil {
		log.Printf("error reloading product %d: %v", product.ID, err)
		return response.ServerError(c, "Error creating product")
	}
	return response.Created(c, created)
}

// applyProductInput copies every present field onto the product.
func applyProductInput(product *models.Product, input *models.ProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = *input.OriginalPrice
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.AvailableStock != nil {
		product.AvailableStock = *input.AvailableStock
		product.StockQuantity = *input.AvailableStock
	}
	if input.StockQuantity != nil {
		product.AvailableStock = *input.StockQuantity
		product.StockQuantity = *input.StockQuantity
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}
	if input.ReviewsCount != nil {
		product.ReviewsCount = *input.ReviewsCount
	}
	if input.TaxPercent != nil {
		product.TaxPercent = *input.TaxPercent
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsBestseller != nil {
		product.IsBestseller = *input.IsBestseller
	}
	if input.IsPipe != nil {
		product.IsPipe = *input.IsPipe
	}
	if input.ItemCode != nil && *input.ItemCode != "" {
		product.ItemCode = *input.ItemCode
	}
	if input.BrandGroup != nil {
		product.BrandGroup = *input.BrandGroup
	}
	if input.SDP != nil {
		product.SDP = *input.SDP
	}
	if input.NRP != nil {
		product.NRP = *input.NRP
	}
	if input.MRP != nil {
		product.MRP = *input.MRP
	}
	if input.HSN != nil {
		product.HSN = *input.HSN
	}
	if input.SGST != nil {
		product.SGST = *input.SGST
	}
	if input.CGST != nil {
		product.CGST = *input.CGST
	}
	if input.IGST != nil {
		product.IGST = *input.IGST
	}
	if input.Cess != nil {
		product.Cess = *input.Cess
	}
}

// Update modifies a product; when the request carries an image list the
// product's image set is replaced wholesale in the same transaction.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Product not found")
		}
		log.Printf("error fetching product %d: %v", id, err)
		return response.ServerError(c, "Error updating product")
	}

	applyProductInput(product, &input)
	product.Images = nil
	product.Category = nil

	images := imageURLsFrom(&input)
	replaceImages := input.Images != nil || input.ImageURLs != nil

	updated, err := h.productRepo.Update(product, images, replaceImages)
	if err != nil {
		log.Printf("error updating product %d: %v", id, err)
		return response.ServerError(c, "Error updating product")
	}
	return response.Success(c, updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	deletedImages, err := h.productRepo.Delete(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Product not found")
		}
		log.Printf("error deleting product %d: %v", id, err)
		return response.ServerError(c, "Error deleting product")
	}

	return response.Success(c, fiber.Map{
		"message":              "Product deleted successfully",
		"deleted_images_count": deletedImages,
	})
}

// Images returns a product's image set ordered by sort_order.
func (h *ProductHandler) Images(c *fiber.Ctx) error {
	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	images, err := h.productRepo.Images(uint(productID))
	if err != nil {
		log.Printf("error fetching images for product %d: %v", productID, err)
		return response.ServerError(c, "Error fetching images")
	}
	return response.Success(c, fiber.Map{"images": images})
}

func (h *ProductHandler) AddImage(c *fiber.Ctx) error {
	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var input struct {
		ImageURL  string `json:"image_url"`
		AltText   string `json:"alt_text"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ImageURL == "" {
		return response.BadRequest(c, "Image URL is required")
	}

	if _, err := h.productRepo.GetByID(uint(productID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Product not found")
		}
		log.Printf("error fetching product %d: %v", productID, err)
		return response.ServerError(c, "Error adding image")
	}

	altText := input.AltText
	if altText == "" {
		altText = "Product image"
	}
	image := &models.ProductImage{
		ProductID: uint(productID),
		ImageURL:  input.ImageURL,
		AltText:   altText,
		SortOrder: input.SortOrder,
	}
	if err := h.productRepo.AddImage(image); err != nil {
		log.Printf("error adding image to product %d: %v", productID, err)
		return response.ServerError(c, "Error adding image")
	}

	return response.Created(c, fiber.Map{
		"message": "Image added successfully",
		"image":   image,
	})
}

func (h *ProductHandler) UpdateImage(c *fiber.Ctx) error {
	imageID, err := strconv.ParseUint(c.Params("imageId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid image ID")
	}

	var input struct {
		ImageURL  *string `json:"image_url"`
		AltText   *string `json:"alt_text"`
		SortOrder *int    `json:"sort_order"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]interface{}{}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.AltText != nil {
		fields["alt_text"] = *input.AltText
	}
	if input.SortOrder != nil {
		fields["sort_order"] = *input.SortOrder
	}

	image, err := h.productRepo.UpdateImage(uint(imageID), fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Image not found")
		}
		log.Printf("error updating image %d: %v", imageID, err)
		return response.ServerError(c, "Error updating product image")
	}

	return response.Success(c, fiber.Map{
		"message": "Image updated successfully",
		"image":   image,
	})
}

func (h *ProductHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, err := strconv.ParseUint(c.Params("imageId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid image ID")
	}

	if err := h.productRepo.DeleteImage(uint(imageID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Image not found")
		}
		log.Printf("error deleting image %d: %v", imageID, err)
		return response.ServerError(c, "Error deleting image")
	}
	return response.Message(c, "Image deleted successfully")
}
