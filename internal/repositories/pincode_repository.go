package repositories

import (
	"sanistore/internal/models"

	"gorm.io/gorm"
)

// PincodeRepository handles pincode rows. Rows are created lazily on
// first reference; Create surfaces gorm.ErrDuplicatedKey on races.
type PincodeRepository interface {
	GetByCode(code int) (*models.Pincode, error)
	Create(pincode *models.Pincode) error
	Upsert(code int, deliveryPrice float64) (*models.Pincode, error)
	List(limit, offset int) ([]models.Pincode, int64, error)
}

type pincodeRepository struct {
	db *gorm.DB
}

func NewPincodeRepository(db *gorm.DB) PincodeRepository {
	return &pincodeRepository{db: db}
}

func (r *pincodeRepository) GetByCode(code int) (*models.Pincode, error) {
	var pincode models.Pincode
	if err := r.db.Where("code = ?", code).First(&pincode).Error; err != nil {
		return nil, err
	}
	return &pincode, nil
}

func (r *pincodeRepository) Create(pincode *models.Pincode) error {
	return r.db.Create(pincode).Error
}

func (r *pincodeRepository) Upsert(code int, deliveryPrice float64) (*models.Pincode, error) {
	pincode, err := r.GetByCode(code)
	if err == nil {
		pincode.DeliveryPrice = deliveryPrice
		return pincode, r.db.Save(pincode).Error
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	pincode = &models.Pincode{Code: code, DeliveryPrice: deliveryPrice}
	if err := r.Create(pincode); err != nil {
		return nil, err
	}
	return pincode, nil
}

func (r *pincodeRepository) List(limit, offset int) ([]models.Pincode, int64, error) {
	var total int64
	if err := r.db.Model(&models.Pincode{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var pincodes []models.Pincode
	err := r.db.Order("code ASC").Limit(limit).Offset(offset).Find(&pincodes).Error
	return pincodes, total, err
}
