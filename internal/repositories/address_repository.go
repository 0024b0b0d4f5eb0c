package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// AddressRepository handles address and pincode persistence.
type AddressRepository interface {
	Create(address *models.Address) error
	GetByID(id uint) (*models.Address, error)
	ListForUser(userID uint) ([]models.Address, error)
	Save(address *models.Address) error
	Delete(id uint) error
	ReferencedByOrder(addressID uint) (bool, error)
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *models.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		return err
	}
	return r.db.Preload("Pincode").First(address, address.ID).Error
}

func (r *addressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.Preload("Pincode").First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) ListForUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Preload("Pincode").Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}

func (r *addressRepository) Save(address *models.Address) error {
	if err := r.db.Save(address).Error; err != nil {
		return err
	}
	return r.db.Preload("Pincode").First(address, address.ID).Error
}

func (r *addressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}

// ReferencedByOrder reports whether any order points at the address.
// Such addresses must not be deleted.
func (r *addressRepository) ReferencedByOrder(addressID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("address_id = ?", addressID).Count(&count).Error
	return count > 0, err
}
