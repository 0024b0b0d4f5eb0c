package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// CartRepository handles cart-item persistence. One logical row exists
// per (user, product).
type CartRepository interface {
	GetItem(userID, productID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Save(item *models.CartItem) error
	GetLoaded(itemID uint) (*models.CartItem, error)
	ListForUser(userID uint) ([]models.CartItem, error)
	DeleteProduct(userID, productID uint) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetItem(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Create(item *models.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepository) Save(item *models.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepository) GetLoaded(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Preload("Product.Category").First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListForUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product.Category").Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// DeleteProduct removes every cart row for (user, product) and returns
// how many rows went away.
func (r *cartRepository) DeleteProduct(userID, productID uint) (int64, error) {
	res := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
