package models

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
)

// Order is immutable after creation except for Status. TotalPrice and
// TotalAmount carry the same value; both columns exist for frontend
// compatibility.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;index" json:"user_id"`
	TotalPrice    float64     `json:"total_price"`
	TotalAmount   float64     `json:"total_amount"`
	AddressID     *uint       `json:"address_id"`
	Address       *Address    `json:"address,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `gorm:"default:'pending'" json:"status"`
	Items         []OrderItem `json:"items,omitempty"`
	User          *User       `json:"user,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem captures the price actually charged at order time,
// decoupled from the product's current price.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"not null;index" json:"order_id"`
	ProductID uint     `gorm:"not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// OrderItemInput is one line of a client-assembled order.
type OrderItemInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateOrderInput covers both order-creation paths: a client-computed
// item list with a total, or (when both are absent) the caller's cart.
type CreateOrderInput struct {
	TotalAmount   float64          `json:"total_amount"`
	AddressID     *uint            `json:"address_id"`
	PaymentMethod string           `json:"payment_method"`
	Items         []OrderItemInput `json:"order_items"`
}
