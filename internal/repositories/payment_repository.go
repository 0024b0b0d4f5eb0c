package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository persists verified payment attempts.
type PaymentRepository interface {
	// CreateAndMarkPaid stores the payment row and flips the order to
	// paid in one transaction.
	CreateAndMarkPaid(payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateAndMarkPaid(payment *models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).
			Where("id = ?", payment.OrderID).
			Update("status", models.OrderStatusPaid).Error
	})
}
