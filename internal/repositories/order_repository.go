package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// OrderRepository handles order persistence and admin aggregates.
type OrderRepository interface {
	// CreateWithItems persists the order and its items, and when
	// clearCartUserID is non-zero deletes that user's cart rows, all
	// inside one transaction.
	CreateWithItems(order *models.Order, clearCartUserID uint) error
	GetByID(id uint) (*models.Order, error)
	ListForUser(userID uint) ([]models.Order, error)
	ListUndelivered(limit, offset int) ([]models.Order, int64, error)
	UpdateStatus(orderID uint, status string) (*models.Order, error)
	Count() (int64, error)
	SumTotals() (float64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(order *models.Order, clearCartUserID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if clearCartUserID != 0 {
			if err := tx.Where("user_id = ?", clearCartUserID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Items.Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListUndelivered returns orders still in flight for the admin board,
// newest first, with the relations the board renders.
func (r *orderRepository) ListUndelivered(limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Where("status <> ?", models.OrderStatusDelivered).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.db.
		Preload("User").
		Preload("Items.Product").
		Preload("Address").
		Where("status <> ?", models.OrderStatusDelivered).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, orderID).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// SumTotals reports zero, not an error, when there are no orders.
func (r *orderRepository) SumTotals() (float64, error) {
	var sum float64
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&sum).Error
	return sum, err
}
