package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"sanistore/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) GetItem(userID, productID uint) (*models.CartItem, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepo) Create(item *models.CartItem) error {
	return m.Called(item).Error(0)
}

func (m *MockCartRepo) Save(item *models.CartItem) error {
	return m.Called(item).Error(0)
}

func (m *MockCartRepo) GetLoaded(itemID uint) (*models.CartItem, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepo) ListForUser(userID uint) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepo) DeleteProduct(userID, productID uint) (int64, error) {
	args := m.Called(userID, productID)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(product *models.Product, imageURLs []string) error {
	return m.Called(product, imageURLs).Error(0)
}

func (m *MockProductRepo) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) List(filter models.ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) ListSimple(categoryID uint, search string, limit int) ([]models.Product, error) {
	args := m.Called(categoryID, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepo) Update(product *models.Product, imageURLs []string, replaceImages bool) (*models.Product, error) {
	args := m.Called(product, imageURLs, replaceImages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepo) Delete(id uint) (int, error) {
	args := m.Called(id)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepo) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepo) Images(productID uint) ([]models.ProductImage, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

func (m *MockProductRepo) AddImage(image *models.ProductImage) error {
	return m.Called(image).Error(0)
}

func (m *MockProductRepo) UpdateImage(imageID uint, fields map[string]interface{}) (*models.ProductImage, error) {
	args := m.Called(imageID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductImage), args.Error(1)
}

func (m *MockProductRepo) DeleteImage(imageID uint) error {
	return m.Called(imageID).Error(0)
}

func newCartApp(cartRepo *MockCartRepo, productRepo *MockProductRepo) *fiber.App {
	h := NewCartHandler(cartRepo, productRepo)

	app := fiber.New()
	asUser := func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	}
	app.Post("/cart", asUser, h.Add)
	app.Get("/cart", asUser, h.List)
	app.Delete("/cart/all/:id", asUser, h.RemoveAll)
	app.Delete("/cart/:id", asUser, h.Remove)
	return app
}

func TestCartAdd(t *testing.T) {
	t.Run("new product creates a row", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)

		productRepo.On("GetByID", uint(3)).Return(&models.Product{ID: 3}, nil)
		cartRepo.On("GetItem", uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)
		cartRepo.On("Create", mock.MatchedBy(func(i *models.CartItem) bool {
			return i.UserID == 1 && i.ProductID == 3 && i.Quantity == 2
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.CartItem).ID = 10
		}).Return(nil)
		cartRepo.On("GetLoaded", uint(10)).Return(&models.CartItem{ID: 10, UserID: 1, ProductID: 3, Quantity: 2}, nil)

		app := newCartApp(cartRepo, productRepo)
		body, _ := json.Marshal(fiber.Map{"product_id": 3, "quantity": 2})
		req := httptest.NewRequest("POST", "/cart", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		cartRepo.AssertExpectations(t)
	})

	t.Run("existing product increments quantity", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)

		productRepo.On("GetByID", uint(3)).Return(&models.Product{ID: 3}, nil)
		cartRepo.On("GetItem", uint(1), uint(3)).Return(&models.CartItem{ID: 10, UserID: 1, ProductID: 3, Quantity: 1}, nil)
		cartRepo.On("Save", mock.MatchedBy(func(i *models.CartItem) bool {
			return i.Quantity == 2
		})).Return(nil)
		cartRepo.On("GetLoaded", uint(10)).Return(&models.CartItem{ID: 10, Quantity: 2}, nil)

		app := newCartApp(cartRepo, productRepo)
		body, _ := json.Marshal(fiber.Map{"product_id": 3})
		req := httptest.NewRequest("POST", "/cart", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		cartRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		productRepo := new(MockProductRepo)
		productRepo.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		app := newCartApp(cartRepo, productRepo)
		body, _ := json.Marshal(fiber.Map{"product_id": 99})
		req := httptest.NewRequest("POST", "/cart", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("quantity above one decrements", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		cartRepo.On("GetItem", uint(1), uint(3)).Return(&models.CartItem{ID: 10, UserID: 1, ProductID: 3, Quantity: 2}, nil)
		cartRepo.On("Save", mock.MatchedBy(func(i *models.CartItem) bool {
			return i.Quantity == 1
		})).Return(nil)

		app := newCartApp(cartRepo, new(MockProductRepo))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/cart/3", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		cartRepo.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
	})

	t.Run("quantity of one deletes the row", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		cartRepo.On("GetItem", uint(1), uint(3)).Return(&models.CartItem{ID: 10, UserID: 1, ProductID: 3, Quantity: 1}, nil)
		cartRepo.On("DeleteProduct", uint(1), uint(3)).Return(int64(1), nil)

		app := newCartApp(cartRepo, new(MockProductRepo))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/cart/3", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		cartRepo.AssertExpectations(t)
	})

	t.Run("product not in cart", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		cartRepo.On("GetItem", uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		app := newCartApp(cartRepo, new(MockProductRepo))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/cart/3", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestCartRemoveAll(t *testing.T) {
	t.Run("removes regardless of quantity", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		cartRepo.On("DeleteProduct", uint(1), uint(3)).Return(int64(1), nil)

		app := newCartApp(cartRepo, new(MockProductRepo))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/cart/all/3", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		cartRepo := new(MockCartRepo)
		cartRepo.On("DeleteProduct", uint(1), uint(3)).Return(int64(0), nil)

		app := newCartApp(cartRepo, new(MockProductRepo))
		resp, err := app.Test(httptest.NewRequest("DELETE", "/cart/all/3", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
