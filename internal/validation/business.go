package validation

import (
	"sanistore/internal/models"
)

// UserRegistration validates a registration request. Every field is
// required; city is accepted as-is (service-area gating happens at
// order time, not here).
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("name", input.Name)
	v.Required("phone", input.Phone)
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	v.Required("city", input.City)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if input.Password != "" {
		v.MinLength("password", input.Password, 6)
	}
}

// ProductCreate validates a product creation request.
func (v *Validator) ProductCreate(input *models.ProductInput) {
	if input.Name == nil || *input.Name == "" {
		v.AddError("name", "must not be empty")
	}
	if input.CategoryID == nil || *input.CategoryID == 0 {
		v.AddError("category_id", "must not be zero")
	}
}

// CartAdd validates an add-to-cart request.
func (v *Validator) CartAdd(productID uint, quantity int) {
	v.Check(productID != 0, "product_id", "must not be zero")
	v.Check(quantity >= 1, "quantity", "must be at least 1")
}
