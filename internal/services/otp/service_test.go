package otp

import (
	"context"
	"testing"
	"time"

	"sanistore/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func TestIssueCode(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewService(mockCache, DefaultConfig())

	mockCache.On("SetWithTTL", mock.Anything, "otp:user@example.com", mock.AnythingOfType("string"), 10*time.Minute).Return(nil)

	code, err := svc.IssueCode(context.Background(), "user@example.com")
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	mockCache.AssertExpectations(t)
}

func TestVerifyCode(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		setupMock func(*MockCache)
		wantErr   error
	}{
		{
			name: "match consumes the code",
			code: "123456",
			setupMock: func(c *MockCache) {
				c.On("Get", mock.Anything, "otp:user@example.com").Return("123456", nil)
				c.On("Delete", mock.Anything, "otp:user@example.com").Return(nil)
			},
			wantErr: nil,
		},
		{
			name: "mismatch leaves the code in place",
			code: "000000",
			setupMock: func(c *MockCache) {
				c.On("Get", mock.Anything, "otp:user@example.com").Return("123456", nil)
			},
			wantErr: ErrCodeInvalid,
		},
		{
			name: "absent or expired code",
			code: "123456",
			setupMock: func(c *MockCache) {
				c.On("Get", mock.Anything, "otp:user@example.com").Return("", cache.ErrCacheMiss)
			},
			wantErr: ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(MockCache)
			tt.setupMock(mockCache)

			svc := NewService(mockCache, DefaultConfig())
			err := svc.VerifyCode(context.Background(), "user@example.com", tt.code)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mockCache.AssertExpectations(t)
			if tt.wantErr != nil {
				// Failed attempts must not consume the stored code.
				mockCache.AssertNotCalled(t, "Delete", mock.Anything, "otp:user@example.com")
			}
		})
	}
}

func TestVerifyCodeConsumedOnce(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewService(mockCache, DefaultConfig())

	mockCache.On("Get", mock.Anything, "otp:user@example.com").Return("654321", nil).Once()
	mockCache.On("Delete", mock.Anything, "otp:user@example.com").Return(nil).Once()
	mockCache.On("Get", mock.Anything, "otp:user@example.com").Return("", cache.ErrCacheMiss).Once()

	assert.NoError(t, svc.VerifyCode(context.Background(), "user@example.com", "654321"))
	assert.ErrorIs(t, svc.VerifyCode(context.Background(), "user@example.com", "654321"), ErrCodeNotFound)

	mockCache.AssertExpectations(t)
}

func TestResetTokenFlow(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewService(mockCache, Config{CodeTTL: time.Minute, ResetTTL: 15 * time.Minute})

	var issued string
	mockCache.On("SetWithTTL", mock.Anything, "reset:user@example.com", mock.AnythingOfType("string"), 15*time.Minute).
		Run(func(args mock.Arguments) { issued = args.String(2) }).
		Return(nil)

	token, err := svc.IssueResetToken(context.Background(), "user@example.com")
	assert.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, issued, token)

	mockCache.On("Get", mock.Anything, "reset:user@example.com").Return(token, nil)
	mockCache.On("Delete", mock.Anything, "reset:user@example.com").Return(nil)

	assert.NoError(t, svc.ConsumeResetToken(context.Background(), "user@example.com", token))
	mockCache.AssertExpectations(t)
}

func TestConsumeResetTokenErrors(t *testing.T) {
	t.Run("wrong token", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", mock.Anything, "reset:user@example.com").Return("stored-token", nil)

		svc := NewService(mockCache, DefaultConfig())
		err := svc.ConsumeResetToken(context.Background(), "user@example.com", "other-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		mockCache := new(MockCache)
		mockCache.On("Get", mock.Anything, "reset:user@example.com").Return("", cache.ErrCacheMiss)

		svc := NewService(mockCache, DefaultConfig())
		err := svc.ConsumeResetToken(context.Background(), "user@example.com", "anything")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})
}
