package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) GetByUserIDForUpdate(userID string) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) Exists(userID, productID string) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Add(userID, productID string, quantity int) error {
	args := m.Called(userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) IncrementQuantity(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(userID, productID string, quantity int, discountPercent decimal.Decimal) error {
	args := m.Called(userID, productID, quantity, discountPercent)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func TestCartService_AddProduct_New(t *testing.T) {
	mockCart := new(MockCartRepository)
	products := newStubProductRepository(models.Product{ID: "p1", Price: dec("10.00")})
	service := services.NewCartService(mockCart, products)

	mockCart.On("Exists", "u1", "p1").Return(false, nil).Once()
	mockCart.On("Add", "u1", "p1", 1).Return(nil).Once()

	err := service.AddProduct("u1", "p1")

	assert.NoError(t, err)
	mockCart.AssertExpectations(t)
}

func TestCartService_AddProduct_AlreadyInCart(t *testing.T) {
	mockCart := new(MockCartRepository)
	products := newStubProductRepository(models.Product{ID: "p1", Price: dec("10.00")})
	service := services.NewCartService(mockCart, products)

	mockCart.On("Exists", "u1", "p1").Return(true, nil).Once()
	mockCart.On("IncrementQuantity", "u1", "p1").Return(nil).Once()

	err := service.AddProduct("u1", "p1")

	assert.NoError(t, err)
	mockCart.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	mockCart.AssertExpectations(t)
}

func TestCartService_AddProduct_UnknownProduct(t *testing.T) {
	mockCart := new(MockCartRepository)
	products := newStubProductRepository()
	service := services.NewCartService(mockCart, products)

	err := service.AddProduct("u1", "missing")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockCart.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestCartService_UpdateProduct(t *testing.T) {
	mockCart := new(MockCartRepository)
	products := newStubProductRepository()
	service := services.NewCartService(mockCart, products)

	// A discount beyond 100 is clamped before it reaches the store.
	mockCart.On("UpdateQuantity", "u1", "p1", 3, dec("100")).Return(nil).Once()
	err := service.UpdateProduct("u1", "p1", 3, dec("150"))
	assert.NoError(t, err)
	mockCart.AssertExpectations(t)

	// Zero quantity removes the row instead of storing an empty line.
	mockCart.On("Delete", "u1", "p1").Return(nil).Once()
	err = service.UpdateProduct("u1", "p1", 0, decimal.Zero)
	assert.NoError(t, err)
	mockCart.AssertExpectations(t)

	// Negative quantities are rejected outright.
	err = service.UpdateProduct("u1", "p1", -1, decimal.Zero)
	assert.Error(t, err)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	mockCart := new(MockCartRepository)
	service := services.NewCartService(mockCart, newStubProductRepository())

	mockCart.On("Delete", "u1", "p1").Return(nil).Once()
	assert.NoError(t, service.RemoveProduct("u1", "p1"))

	mockCart.On("Clear", "u1").Return(nil).Once()
	assert.NoError(t, service.ClearCart("u1"))

	mockCart.On("Clear", "u2").Return(fmt.Errorf("database error")).Once()
	assert.Error(t, service.ClearCart("u2"))

	mockCart.AssertExpectations(t)
}

func TestCartService_GetCart(t *testing.T) {
	mockCart := new(MockCartRepository)
	service := services.NewCartService(mockCart, newStubProductRepository())

	expected := models.NewCart()
	mockCart.On("GetByUserID", "u1").Return(expected, nil).Once()

	cart, err := service.GetCart("u1")

	assert.NoError(t, err)
	assert.Equal(t, expected, cart)
	mockCart.AssertExpectations(t)
}
