// Package models defines the persistent entities and request shapes
// shared across repositories, services and handlers.
package models

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// TricityCities is the fixed service-area allow-list. Matching is
// case-insensitive; users outside it are created with IsTricity=false.
var TricityCities = []string{"chandigarh", "mohali", "panchkula"}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Role      string    `gorm:"default:'customer'" json:"role"`
	IsTricity bool      `gorm:"default:true" json:"is_tricity"`
	IsBlocked bool      `gorm:"default:false" json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserInput is the registration request body.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	City     string `json:"city"`
}

// IsTricityCity reports whether city belongs to the service area.
func IsTricityCity(city string) bool {
	for _, c := range TricityCities {
		if strings.EqualFold(city, c) {
			return true
		}
	}
	return false
}
