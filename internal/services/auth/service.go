// Package auth implements registration, login and the password
// verification/reset flows.
package auth

import (
	"context"
	"errors"
	"log"

	"sanistore/internal/models"
	"sanistore/internal/repositories"
	"sanistore/internal/services/otp"
	"sanistore/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUserNotFound       = errors.New("user not found")
	ErrOutsideServiceArea = errors.New("only tricity users allowed")
)

// Notifier delivers one-time codes to users. Email delivery is out of
// scope here, so the default implementation just logs.
type Notifier interface {
	SendCode(email, code string) error
}

type logNotifier struct{}

func (logNotifier) SendCode(email, code string) error {
	log.Printf("verification code for %s: %s", email, code)
	return nil
}

// NewLogNotifier returns a Notifier that logs codes instead of
// emailing them.
func NewLogNotifier() Notifier { return logNotifier{} }

type Service interface {
	Register(ctx context.Context, input models.CreateUserInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	SendVerificationCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyForgotPasswordCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, email, newPassword, resetToken string) error
	UpdateProfileAddress(ctx context.Context, userID uint, address, city, phone string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type service struct {
	userRepo repositories.UserRepository
	otpSvc   otp.Service
	notifier Notifier
}

func NewService(userRepo repositories.UserRepository, otpSvc otp.Service, notifier Notifier) Service {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	return &service{
		userRepo: userRepo,
		otpSvc:   otpSvc,
		notifier: notifier,
	}
}

// Register creates the user and returns it with a signed token.
// Cities outside the service area are accepted but flagged.
func (s *service) Register(ctx context.Context, input models.CreateUserInput) (*models.User, string, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, "", ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		City:      input.City,
		Role:      models.RoleCustomer,
		IsTricity: models.IsTricityCity(input.City),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SendVerificationCode issues a registration OTP for the email. The
// email does not need an account yet.
func (s *service) SendVerificationCode(ctx context.Context, email string) error {
	code, err := s.otpSvc.IssueCode(ctx, email)
	if err != nil {
		return err
	}
	return s.notifier.SendCode(email, code)
}

func (s *service) VerifyCode(ctx context.Context, email, code string) error {
	return s.otpSvc.VerifyCode(ctx, email, code)
}

// ForgotPassword issues a reset OTP; unlike SendVerificationCode the
// account must exist.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.GetByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	code, err := s.otpSvc.IssueCode(ctx, email)
	if err != nil {
		return err
	}
	return s.notifier.SendCode(email, code)
}

// VerifyForgotPasswordCode consumes the OTP and mints the single-use
// reset token.
func (s *service) VerifyForgotPasswordCode(ctx context.Context, email, code string) (string, error) {
	if err := s.otpSvc.VerifyCode(ctx, email, code); err != nil {
		return "", err
	}
	return s.otpSvc.IssueResetToken(ctx, email)
}

// ResetPassword validates and consumes the reset token, then replaces
// the password hash.
func (s *service) ResetPassword(ctx context.Context, email, newPassword, resetToken string) error {
	if err := s.otpSvc.ConsumeResetToken(ctx, email, resetToken); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(user)
}

// UpdateProfileAddress updates the free-form profile address. The city
// must be inside the service area; this check is intentionally absent
// from Register.
func (s *service) UpdateProfileAddress(ctx context.Context, userID uint, address, city, phone string) (*models.User, error) {
	if !models.IsTricityCity(city) {
		return nil, ErrOutsideServiceArea
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Address = address
	user.City = city
	user.Phone = phone
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.Delete(userID)
}
