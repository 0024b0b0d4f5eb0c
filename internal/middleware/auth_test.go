package middleware

import (
	"net/http/httptest"
	"testing"

	"sanistore/internal/models"
	"sanistore/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *MockUserRepo) List(limit, offset int) ([]models.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func newApp(userRepo *MockUserRepo, adminOnly bool) *fiber.App {
	app := fiber.New()
	m := NewAuthMiddleware(userRepo)

	handlers := []fiber.Handler{m.Handler}
	if adminOnly {
		handlers = append(handlers, AdminOnly)
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		id, _ := CurrentUserID(c)
		return c.JSON(fiber.Map{"user_id": id})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("missing token", func(t *testing.T) {
		app := newApp(new(MockUserRepo), false)
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		app := newApp(new(MockUserRepo), false)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		app := newApp(new(MockUserRepo), false)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		token, err := utils.GenerateToken(&models.User{ID: 9, Role: models.RoleCustomer})
		assert.NoError(t, err)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		app := newApp(userRepo, false)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := utils.GenerateToken(&models.User{ID: 9, Role: models.RoleCustomer})
		assert.NoError(t, err)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(9)).Return(&models.User{ID: 9}, nil)

		app := newApp(userRepo, false)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAdminOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("customer is rejected", func(t *testing.T) {
		token, err := utils.GenerateToken(&models.User{ID: 2, Role: models.RoleCustomer})
		assert.NoError(t, err)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(2)).Return(&models.User{ID: 2, Role: models.RoleCustomer}, nil)

		app := newApp(userRepo, true)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := utils.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
		assert.NoError(t, err)

		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", uint(1)).Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)

		app := newApp(userRepo, true)
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
