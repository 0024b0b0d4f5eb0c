// Package otp implements the one-time-code and reset-token flows used
// for email verification and password reset. Codes live in the cache
// only; nothing here touches the relational store.
package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanistore/internal/repositories/cache"
	"sanistore/internal/utils"
)

var (
	ErrCodeNotFound  = errors.New("verification code not found or expired")
	ErrCodeInvalid   = errors.New("invalid verification code")
	ErrTokenNotFound = errors.New("reset token not found or expired")
	ErrTokenInvalid  = errors.New("invalid reset token")
)

// Cache is the subset of the cache service the OTP flow needs.
type Cache interface {
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

// Config carries the two independent expiries.
type Config struct {
	CodeTTL  time.Duration
	ResetTTL time.Duration
}

// DefaultConfig matches the production expiries: 10 minutes for codes,
// 15 minutes for reset tokens.
func DefaultConfig() Config {
	return Config{
		CodeTTL:  10 * time.Minute,
		ResetTTL: 15 * time.Minute,
	}
}

type Service interface {
	IssueCode(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code string) error
	IssueResetToken(ctx context.Context, email string) (string, error)
	ConsumeResetToken(ctx context.Context, email, token string) error
}

type service struct {
	cache Cache
	cfg   Config
}

func NewService(c Cache, cfg Config) Service {
	if cfg.CodeTTL == 0 {
		cfg.CodeTTL = DefaultConfig().CodeTTL
	}
	if cfg.ResetTTL == 0 {
		cfg.ResetTTL = DefaultConfig().ResetTTL
	}
	return &service{cache: c, cfg: cfg}
}

func codeKey(email string) string  { return "otp:" + email }
func resetKey(email string) string { return "reset:" + email }

// IssueCode generates a fresh 6-digit code for the email, overwriting
// any previously issued code.
func (s *service) IssueCode(ctx context.Context, email string) (string, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, codeKey(email), code, s.cfg.CodeTTL); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyCode checks the presented code. A match consumes the stored
// code; a mismatch leaves it in place so the caller can retry within
// the TTL.
func (s *service) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.cache.Get(ctx, codeKey(email))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ErrCodeNotFound
		}
		return err
	}
	if stored != code {
		return ErrCodeInvalid
	}
	return s.cache.Delete(ctx, codeKey(email))
}

// IssueResetToken mints the single-use password-reset token. Callers
// must only invoke it after a successful VerifyCode.
func (s *service) IssueResetToken(ctx context.Context, email string) (string, error) {
	token, err := utils.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.cache.SetWithTTL(ctx, resetKey(email), token, s.cfg.ResetTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeResetToken validates and deletes the reset token so it cannot
// be replayed.
func (s *service) ConsumeResetToken(ctx context.Context, email, token string) error {
	stored, err := s.cache.Get(ctx, resetKey(email))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ErrTokenNotFound
		}
		return err
	}
	if stored != token {
		return ErrTokenInvalid
	}
	return s.cache.Delete(ctx, resetKey(email))
}
