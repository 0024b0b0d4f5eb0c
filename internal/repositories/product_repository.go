package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// ProductRepository handles product and product-image persistence.
type ProductRepository interface {
	Create(product *models.Product, imageURLs []string) error
	GetByID(id uint) (*models.Product, error)
	List(filter models.ProductFilter, limit, offset int) ([]models.Product, int64, error)
	ListSimple(categoryID uint, search string, limit int) ([]models.Product, error)
	Update(product *models.Product, imageURLs []string, replaceImages bool) (*models.Product, error)
	Delete(id uint) (int, error)
	Count() (int64, error)

	Images(productID uint) ([]models.ProductImage, error)
	AddImage(image *models.ProductImage) error
	UpdateImage(imageID uint, fields map[string]interface{}) (*models.ProductImage, error)
	DeleteImage(imageID uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

// Create inserts the product and, when imageURLs is non-empty, its
// image rows in one transaction.
func (r *productRepository) Create(product *models.Product, imageURLs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return insertImages(tx, product, imageURLs)
	})
}

func insertImages(tx *gorm.DB, product *models.Product, imageURLs []string) error {
	if len(imageURLs) == 0 {
		return nil
	}
	images := make([]models.ProductImage, len(imageURLs))
	for i, url := range imageURLs {
		images[i] = models.ProductImage{
			ProductID: product.ID,
			ImageURL:  url,
			AltText:   product.Name + " image",
			SortOrder: i,
		}
	}
	return tx.Create(&images).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := withImages(r.db).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func applyFilter(db *gorm.DB, filter models.ProductFilter) *gorm.DB {
	if filter.CategoryID != 0 {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ? OR item_code ILIKE ?", pattern, pattern, pattern)
	}
	if filter.IsFeatured != nil {
		db = db.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsBestseller != nil {
		db = db.Where("is_bestseller = ?", *filter.IsBestseller)
	}
	if filter.IsPipe != nil {
		db = db.Where("is_pipe = ?", *filter.IsPipe)
	}
	return db
}

var sortableColumns = map[string]bool{
	"created_at": true,
	"name":       true,
	"price":      true,
	"rating":     true,
}

func (r *productRepository) List(filter models.ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	var total int64
	if err := applyFilter(r.db.Model(&models.Product{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	var products []models.Product
	err := applyFilter(withImages(r.db), filter).
		Order(sortBy + " " + direction).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (r *productRepository) ListSimple(categoryID uint, search string, limit int) ([]models.Product, error) {
	db := r.db.Preload("Category")
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name ILIKE ? OR item_code ILIKE ?", pattern, pattern)
	}
	var products []models.Product
	err := db.Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

// Update saves the product and, when replaceImages is set, replaces its
// image set wholesale. Both steps commit or neither does.
func (r *productRepository) Update(product *models.Product, imageURLs []string, replaceImages bool) (*models.Product, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		if !replaceImages {
			return nil
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return insertImages(tx, product, imageURLs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(product.ID)
}

// Delete removes the product; image rows cascade. It returns the
// number of images that went with it.
func (r *productRepository) Delete(id uint) (int, error) {
	var deletedImages int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Preload("Images").First(&product, id).Error; err != nil {
			return err
		}
		deletedImages = len(product.Images)
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
	return deletedImages, err
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) Images(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.Where("product_id = ?", productID).Order("sort_order ASC").Find(&images).Error
	return images, err
}

func (r *productRepository) AddImage(image *models.ProductImage) error {
	return r.db.Create(image).Error
}

func (r *productRepository) UpdateImage(imageID uint, fields map[string]interface{}) (*models.ProductImage, error) {
	var image models.ProductImage
	if err := r.db.First(&image, imageID).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&image).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *productRepository) DeleteImage(imageID uint) error {
	res := r.db.Delete(&models.ProductImage{}, imageID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
