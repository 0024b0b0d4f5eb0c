package models

import "time"

// Payment records a verified gateway payment attempt for an order.
// A row is created only after the gateway signature checks out.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	OrderRef  string    `gorm:"not null" json:"order_ref"`
	PaymentID string    `gorm:"not null" json:"payment_id"`
	Signature string    `gorm:"not null" json:"signature"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
