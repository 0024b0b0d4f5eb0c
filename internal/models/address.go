package models

import "time"

// DefaultDeliveryPrice is applied when a pincode is first seen.
const DefaultDeliveryPrice = 100.0

type Address struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Label     string    `gorm:"not null" json:"label"`
	House     string    `gorm:"not null" json:"house"`
	Street    string    `gorm:"not null" json:"street"`
	Landmark  string    `json:"landmark"`
	Address1  string    `json:"address1"`
	City      string    `gorm:"not null" json:"city"`
	PincodeID uint      `gorm:"not null" json:"pincode_id"`
	Pincode   *Pincode  `json:"pincode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pincode maps a postal code to a delivery price. Rows are created
// lazily on first reference and shared by many addresses.
type Pincode struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          int       `gorm:"uniqueIndex;not null" json:"code"`
	DeliveryPrice float64   `gorm:"default:100" json:"delivery_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AddressInput is the create/update request body for addresses.
type AddressInput struct {
	Label    string `json:"label"`
	House    string `json:"house"`
	Street   string `json:"street"`
	Landmark string `json:"landmark"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Pincode  int    `json:"pincode"`
}
