// Package delivery resolves postal codes to delivery prices and owns
// the address book.
package delivery

import (
	"context"
	"errors"
	"strings"

	"sanistore/internal/models"
	"sanistore/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressInUse    = errors.New("cannot delete address used in an order")
	ErrCityNotAllowed  = errors.New("city must be one of: panchkula, mohali, chandigarh")
	ErrMissingFields   = errors.New("house, street, city, label, and pincode are required")
)

type Service interface {
	GetOrCreatePincode(ctx context.Context, code int) (*models.Pincode, bool, error)
	PriceForPincode(ctx context.Context, code int) (*models.Pincode, bool, error)
	PriceForAddress(ctx context.Context, userID, addressID uint) (*models.Address, error)
	UpsertPincode(ctx context.Context, code int, price float64) (*models.Pincode, error)
	ListPincodes(ctx context.Context, limit, offset int) ([]models.Pincode, int64, error)

	CreateAddress(ctx context.Context, userID uint, input models.AddressInput) (*models.Address, error)
	ListAddresses(ctx context.Context, userID uint) ([]models.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uint, input models.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID uint) error
}

type service struct {
	addressRepo repositories.AddressRepository
	pincodeRepo repositories.PincodeRepository
}

func NewService(addressRepo repositories.AddressRepository, pincodeRepo repositories.PincodeRepository) Service {
	return &service{
		addressRepo: addressRepo,
		pincodeRepo: pincodeRepo,
	}
}

// GetOrCreatePincode resolves a code to its row, creating one with the
// default price on first use. Concurrent first-time lookups race on the
// insert; the loser hits the unique index and re-reads instead of
// surfacing the conflict. Returns whether the row already existed.
func (s *service) GetOrCreatePincode(ctx context.Context, code int) (*models.Pincode, bool, error) {
	pincode, err := s.pincodeRepo.GetByCode(code)
	if err == nil {
		return pincode, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	pincode = &models.Pincode{Code: code, DeliveryPrice: models.DefaultDeliveryPrice}
	if err := s.pincodeRepo.Create(pincode); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, rerr := s.pincodeRepo.GetByCode(code)
			if rerr != nil {
				return nil, false, rerr
			}
			return existing, true, nil
		}
		return nil, false, err
	}
	return pincode, false, nil
}

// PriceForPincode returns the delivery price for a code, persisting the
// default row for codes not seen before.
func (s *service) PriceForPincode(ctx context.Context, code int) (*models.Pincode, bool, error) {
	return s.GetOrCreatePincode(ctx, code)
}

func (s *service) PriceForAddress(ctx context.Context, userID, addressID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

func (s *service) UpsertPincode(ctx context.Context, code int, price float64) (*models.Pincode, error) {
	return s.pincodeRepo.Upsert(code, price)
}

func (s *service) ListPincodes(ctx context.Context, limit, offset int) ([]models.Pincode, int64, error) {
	return s.pincodeRepo.List(limit, offset)
}

func (s *service) CreateAddress(ctx context.Context, userID uint, input models.AddressInput) (*models.Address, error) {
	if input.House == "" || input.Street == "" || input.City == "" || input.Label == "" || input.Pincode == 0 {
		return nil, ErrMissingFields
	}

	pincode, _, err := s.GetOrCreatePincode(ctx, input.Pincode)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:    userID,
		Label:     input.Label,
		House:     input.House,
		Street:    input.Street,
		Landmark:  input.Landmark,
		Address1:  input.Address1,
		City:      input.City,
		PincodeID: pincode.ID,
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) ListAddresses(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.addressRepo.ListForUser(userID)
}

// UpdateAddress enforces the city allow-list; CreateAddress
// intentionally does not.
func (s *service) UpdateAddress(ctx context.Context, userID, addressID uint, input models.AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	if address.UserID != userID {
		return nil, ErrAddressNotFound
	}

	if input.City != "" {
		if !models.IsTricityCity(input.City) {
			return nil, ErrCityNotAllowed
		}
		address.City = strings.ToLower(input.City)
	}
	if input.Pincode != 0 {
		pincode, _, err := s.GetOrCreatePincode(ctx, input.Pincode)
		if err != nil {
			return nil, err
		}
		address.PincodeID = pincode.ID
		address.Pincode = pincode
	}
	if input.Label != "" {
		address.Label = input.Label
	}
	if input.House != "" {
		address.House = input.House
	}
	if input.Street != "" {
		address.Street = input.Street
	}
	if input.Landmark != "" {
		address.Landmark = input.Landmark
	}
	if input.Address1 != "" {
		address.Address1 = input.Address1
	}

	if err := s.addressRepo.Save(address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	address, err := s.addressRepo.GetByID(addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if address.UserID != userID {
		return ErrAddressNotFound
	}

	inUse, err := s.addressRepo.ReferencedByOrder(addressID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrAddressInUse
	}
	return s.addressRepo.Delete(addressID)
}
