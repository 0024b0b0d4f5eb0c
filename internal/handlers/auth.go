// Package handlers contains the fiber HTTP handlers, one file per API
// area. Handlers parse requests, call one service, and reshape the
// result for the frontend.
package handlers

import (
	"errors"
	"log"

	"sanistore/internal/middleware"
	"sanistore/internal/models"
	"sanistore/internal/services/auth"
	"sanistore/internal/services/otp"
	"sanistore/internal/utils/response"
	"sanistore/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and returns it with a signed token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		return response.BadRequest(c, v.FirstError())
	}

	user, token, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return response.BadRequest(c, "User already exists")
		}
		log.Printf("registration failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Created(c, fiber.Map{"user": user, "token": token})
}

// Login authenticates by email and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Email and password required")
	}

	user, token, err := h.authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.BadRequest(c, "Invalid credentials")
		case errors.Is(err, auth.ErrWrongPassword):
			return response.BadRequest(c, "Wrong password")
		}
		log.Printf("login failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{"user": user, "token": token})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, user)
}

// Logout is stateless; the client discards the token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.Message(c, "Logout success (client deletes token)")
}

// DeleteAccount removes the caller's own account.
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.BadRequest(c, "User not authenticated")
	}
	if err := h.authService.DeleteAccount(c.Context(), userID); err != nil {
		log.Printf("error deleting user %d: %v", userID, err)
		return response.ServerError(c, "Internal server error")
	}
	return response.Message(c, "User deleted successfully")
}

// SendCode issues a registration verification code for an email.
func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.SendVerificationCode(c.Context(), input.Email); err != nil {
		log.Printf("send code failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Failed to send verification code")
	}
	return response.Message(c, "Verification code sent to your email")
}

// VerifyOTP consumes a verification code.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" || input.Code == "" {
		return response.BadRequest(c, "Email and code are required")
	}

	if err := h.authService.VerifyCode(c.Context(), input.Email, input.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrCodeNotFound):
			return response.BadRequest(c, "No verification code found. Please request a new one.")
		case errors.Is(err, otp.ErrCodeInvalid):
			return response.BadRequest(c, "Invalid verification code")
		}
		log.Printf("otp verification failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{"message": "OTP verified successfully!", "email": input.Email})
}

// ForgotPassword issues a password-reset code for an existing account.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	if err := h.authService.ForgotPassword(c.Context(), input.Email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		log.Printf("forgot password failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Failed to send password reset code")
	}
	return response.Message(c, "Password reset code sent to your email")
}

// VerifyForgotPasswordCode consumes the reset OTP and returns the
// single-use reset token.
func (h *AuthHandler) VerifyForgotPasswordCode(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" || input.Code == "" {
		return response.BadRequest(c, "Email and code are required")
	}

	token, err := h.authService.VerifyForgotPasswordCode(c.Context(), input.Email, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrCodeNotFound):
			return response.NotFound(c, "Code not found or expired")
		case errors.Is(err, otp.ErrCodeInvalid):
			return response.BadRequest(c, "Invalid code")
		}
		log.Printf("verify forgot password code failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{
		"message":     "Code verified successfully",
		"reset_token": token,
		"email":       input.Email,
	})
}

// ResetPassword replaces the password after validating the reset token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
		ResetToken  string `json:"reset_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.Email == "" || input.NewPassword == "" || input.ResetToken == "" {
		return response.BadRequest(c, "Email, new password, and reset token are required")
	}

	if err := h.authService.ResetPassword(c.Context(), input.Email, input.NewPassword, input.ResetToken); err != nil {
		switch {
		case errors.Is(err, otp.ErrTokenNotFound):
			return response.Unauthorized(c, "Reset token not found or expired. Please verify your OTP again.")
		case errors.Is(err, otp.ErrTokenInvalid):
			return response.Unauthorized(c, "Invalid reset token. Please verify your OTP again.")
		case errors.Is(err, auth.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		}
		log.Printf("reset password failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Message(c, "Password reset successfully. You can now login with your new password.")
}

// UpdateAddress updates the free-form profile address; the city must
// be inside the service area.
func (h *AuthHandler) UpdateAddress(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		Address string `json:"address"`
		City    string `json:"city"`
		Phone   string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Address == "" || input.City == "" || input.Phone == "" {
		return response.BadRequest(c, "Address, city, and phone are required")
	}

	user, err := h.authService.UpdateProfileAddress(c.Context(), userID, input.Address, input.City, input.Phone)
	if err != nil {
		if errors.Is(err, auth.ErrOutsideServiceArea) {
			return response.BadRequest(c, "Only Tricity users allowed")
		}
		log.Printf("update address failed for user %d: %v", userID, err)
		return response.ServerError(c, "Internal server error")
	}

	return response.Success(c, fiber.Map{
		"message": "Address updated successfully",
		"user":    user,
	})
}
