// Package order implements pricing and order assembly: it turns either
// a client-supplied item list or the caller's cart into a persisted
// order with prices fixed at creation time.
package order

import (
	"context"
	"errors"

	"sanistore/internal/models"
	"sanistore/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrInvalidAddress = errors.New("invalid address selected")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrOrderNotFound  = errors.New("order not found")
	ErrMissingStatus  = errors.New("status is required")
)

type Service interface {
	Create(ctx context.Context, userID uint, input models.CreateOrderInput) (*models.Order, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error)
}

type service struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	addressRepo repositories.AddressRepository
}

func NewService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, addressRepo repositories.AddressRepository) Service {
	return &service{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
	}
}

// Create builds and persists an order. When the input carries both a
// total and an item list the client-computed numbers are stored as-is
// (the total may already include delivery); otherwise the caller's
// cart is priced, the order is created and the cart is cleared inside
// one transaction.
func (s *service) Create(ctx context.Context, userID uint, input models.CreateOrderInput) (*models.Order, error) {
	if input.AddressID != nil {
		address, err := s.addressRepo.GetByID(*input.AddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidAddress
			}
			return nil, err
		}
		if address.UserID != userID {
			return nil, ErrInvalidAddress
		}
	}

	if input.TotalAmount > 0 && len(input.Items) > 0 {
		return s.createDirect(userID, input)
	}
	return s.createFromCart(userID, input)
}

func (s *service) createDirect(userID uint, input models.CreateOrderInput) (*models.Order, error) {
	items := make([]models.OrderItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	order := &models.Order{
		UserID:        userID,
		TotalPrice:    input.TotalAmount,
		TotalAmount:   input.TotalAmount,
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		Items:         items,
	}
	if err := s.orderRepo.CreateWithItems(order, 0); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) createFromCart(userID uint, input models.CreateOrderInput) (*models.Order, error) {
	cartItems, err := s.cartRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		unit := item.Product.TaxInclusivePrice()
		total += unit * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     unit,
		})
	}

	order := &models.Order{
		UserID:        userID,
		TotalPrice:    total,
		TotalAmount:   total,
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		Status:        models.OrderStatusPending,
		Items:         items,
	}
	// Order creation and cart clearing commit together; a failure on
	// either side rolls back both.
	if err := s.orderRepo.CreateWithItems(order, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.ListForUser(userID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, ErrMissingStatus
	}
	order, err := s.orderRepo.UpdateStatus(orderID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}
