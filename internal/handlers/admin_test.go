package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"sanistore/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateWithItems(order *models.Order, clearCartUserID uint) error {
	return m.Called(order, clearCartUserID).Error(0)
}

func (m *MockOrderRepo) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepo) ListForUser(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepo) ListUndelivered(limit, offset int) ([]models.Order, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepo) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	args := m.Called(orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) SumTotals() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

func TestDashboardStats(t *testing.T) {
	t.Run("empty store reports zero revenue", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orderRepo := new(MockOrderRepo)
		productRepo := new(MockProductRepo)

		userRepo.On("Count").Return(int64(0), nil)
		productRepo.On("Count").Return(int64(0), nil)
		orderRepo.On("Count").Return(int64(0), nil)
		orderRepo.On("SumTotals").Return(0.0, nil)

		h := NewAdminHandler(userRepo, orderRepo, productRepo, nil)
		app := fiber.New()
		app.Get("/stats", h.DashboardStats)

		resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var stats map[string]float64
		assert.NoError(t, json.Unmarshal(body, &stats))
		assert.Equal(t, 0.0, stats["total_revenue"])
		assert.Equal(t, 0.0, stats["total_orders"])
	})

	t.Run("populated store", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		orderRepo := new(MockOrderRepo)
		productRepo := new(MockProductRepo)

		userRepo.On("Count").Return(int64(12), nil)
		productRepo.On("Count").Return(int64(40), nil)
		orderRepo.On("Count").Return(int64(7), nil)
		orderRepo.On("SumTotals").Return(15230.5, nil)

		h := NewAdminHandler(userRepo, orderRepo, productRepo, nil)
		app := fiber.New()
		app.Get("/stats", h.DashboardStats)

		resp, err := app.Test(httptest.NewRequest("GET", "/stats", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		var stats map[string]float64
		assert.NoError(t, json.Unmarshal(body, &stats))
		assert.Equal(t, 12.0, stats["total_users"])
		assert.Equal(t, 15230.5, stats["total_revenue"])
	})
}

func TestAdminUsers(t *testing.T) {
	userRepo := new(MockUserRepo)
	userRepo.On("List", 20, 0).Return([]models.User{
		{ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleAdmin},
		{ID: 2, Name: "Ravi", Email: "ravi@example.com", Role: models.RoleCustomer},
	}, nil)
	userRepo.On("Count").Return(int64(2), nil)

	h := NewAdminHandler(userRepo, new(MockOrderRepo), new(MockProductRepo), nil)
	app := fiber.New()
	app.Get("/users", h.Users)

	resp, err := app.Test(httptest.NewRequest("GET", "/users", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Users      []models.User          `json:"users"`
		Pagination map[string]interface{} `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Len(t, payload.Users, 2)
	assert.Equal(t, float64(1), payload.Pagination["total_pages"])
}
