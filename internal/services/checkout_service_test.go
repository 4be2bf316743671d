package services_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(userID string) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// stubProductRepository serves products out of a map. Only the read side is
// exercised by checkout.
type stubProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func newStubProductRepository(products ...models.Product) *stubProductRepository {
	repo := &stubProductRepository{products: make(map[string]models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *stubProductRepository) setPrice(id string, price decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.products[id]
	p.Price = price
	r.products[id] = p
}

func (r *stubProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, repositories.ErrNotFound)
	}
	return &p, nil
}

func (r *stubProductRepository) GetAll() ([]models.Product, error)           { return nil, nil }
func (r *stubProductRepository) ListByCategoryID(string) ([]models.Product, error) {
	return nil, nil
}
func (r *stubProductRepository) Search(repositories.ProductFilter) ([]models.Product, error) {
	return nil, nil
}
func (r *stubProductRepository) Create(*models.Product) error { return nil }
func (r *stubProductRepository) Update(*models.Product) error { return nil }
func (r *stubProductRepository) Delete(string) error          { return nil }

// checkoutFixture bundles the in-memory stores a checkout test needs.
type checkoutFixture struct {
	service  *services.CheckoutService
	orders   *repositories.MemoryOrderRepository
	carts    *repositories.MemoryCartRepository
	products *stubProductRepository
	profiles *MockProfileRepository
}

func newCheckoutFixture(t *testing.T, profile *models.Profile) *checkoutFixture {
	t.Helper()

	products := newStubProductRepository(
		models.Product{ID: "p1", Name: "Laptop", Price: dec("1200.00")},
		models.Product{ID: "p2", Name: "Mouse", Price: dec("25.00")},
	)
	orders := repositories.NewMemoryOrderRepository()
	carts := repositories.NewMemoryCartRepository(products)
	uow := repositories.NewMemoryUnitOfWork(orders, carts, products)

	users := new(MockUserRepository)
	users.On("GetByID", "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil)

	profiles := new(MockProfileRepository)
	if profile != nil {
		profiles.On("GetByUserID", "u1").Return(profile, nil)
	} else {
		profiles.On("GetByUserID", "u1").Return(nil, fmt.Errorf("profile for user u1: %w", repositories.ErrNotFound))
	}

	return &checkoutFixture{
		service:  services.NewCheckoutService(uow, users, profiles, orders, nil),
		orders:   orders,
		carts:    carts,
		products: products,
		profiles: profiles,
	}
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	order, err := f.service.Checkout("u1")

	assert.ErrorIs(t, err, services.ErrEmptyCart)
	assert.Nil(t, order)
	assert.Equal(t, 0, f.orders.Count(), "no order may be persisted for an empty cart")
}

func TestCheckoutService_Success(t *testing.T) {
	profile := &models.Profile{UserID: "u1", Address: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"}
	f := newCheckoutFixture(t, profile)

	assert.NoError(t, f.carts.Add("u1", "p1", 1))
	assert.NoError(t, f.carts.Add("u1", "p2", 2))
	assert.NoError(t, f.carts.UpdateQuantity("u1", "p1", 1, dec("10")))

	order, err := f.service.Checkout("u1")
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "123 Main St, Springfield, IL 62704", order.ShippingAddress)
	assert.True(t, decimal.Zero.Equal(order.ShippingAmount))
	assert.Len(t, order.LineItems, 2, "one line item per cart item")

	// 1200 - 120 + 2*25
	assert.True(t, dec("1130.00").Equal(order.Total()), "got %s", order.Total())

	// The cart must be empty afterwards.
	cart, err := f.carts.GetByUserID("u1")
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// The persisted order matches what was returned.
	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, stored.LineItems, 2)
	assert.True(t, order.Total().Equal(stored.Total()))
}

func TestCheckoutService_SnapshotsCurrentPrice(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	assert.NoError(t, f.carts.Add("u1", "p2", 1))
	// The catalog price changes after the product went into the cart; the
	// line item must record the price at checkout time.
	f.products.setPrice("p2", dec("30.00"))

	order, err := f.service.Checkout("u1")
	assert.NoError(t, err)
	assert.Len(t, order.LineItems, 1)
	assert.True(t, dec("30.00").Equal(order.LineItems[0].SalesPrice))
}

func TestCheckoutService_NoProfileUsesPlaceholderAddress(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	assert.NoError(t, f.carts.Add("u1", "p1", 1))

	order, err := f.service.Checkout("u1")
	assert.NoError(t, err)
	assert.Equal(t, services.NoAddressOnFile, order.ShippingAddress)
}

func TestCheckoutService_FailureRollsBackAndRetrySucceeds(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	assert.NoError(t, f.carts.Add("u1", "p1", 1))
	assert.NoError(t, f.carts.Add("u1", "p2", 1))

	// Simulate a storage failure while writing line items.
	f.orders.FailAddLineItem = errors.New("connection reset")

	order, err := f.service.Checkout("u1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrEmptyCart)
	assert.Nil(t, order)

	// Nothing may be visible: no order rows, cart untouched.
	assert.Equal(t, 0, f.orders.Count())
	cart, _ := f.carts.GetByUserID("u1")
	assert.Len(t, cart.Items, 2, "cart must remain exactly as it was")

	// After the failure condition clears, the retry produces exactly one order.
	order, err = f.service.Checkout("u1")
	assert.NoError(t, err)
	assert.Len(t, order.LineItems, 2)
	assert.Equal(t, 1, f.orders.Count(), "retry must not duplicate the order")
}

func TestCheckoutService_ConcurrentSameUser(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	assert.NoError(t, f.carts.Add("u1", "p1", 2))

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Checkout("u1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, emptyCarts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, services.ErrEmptyCart):
			emptyCarts++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one checkout may win the cart")
	assert.Equal(t, 1, emptyCarts, "the loser sees an empty cart")
	assert.Equal(t, 1, f.orders.Count())
}

func TestCheckoutService_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", "ghost").Return(nil, fmt.Errorf("user with ID ghost: %w", repositories.ErrNotFound))

	service := services.NewCheckoutService(nil, users, new(MockProfileRepository), nil, nil)

	order, err := service.Checkout("ghost")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, order)
}

// mockOrderRepository lets a test force Create to "succeed" without
// assigning an identity.
type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *mockOrderRepository) AddLineItem(item *models.OrderLineItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// passthroughUnitOfWork runs fn against fixed repositories with no
// transaction semantics.
type passthroughUnitOfWork struct {
	orders   repositories.OrderRepository
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

func (u *passthroughUnitOfWork) Do(fn func(tx repositories.RepositoryTx) error) error {
	return fn(u)
}
func (u *passthroughUnitOfWork) Orders() repositories.OrderRepository     { return u.orders }
func (u *passthroughUnitOfWork) Carts() repositories.CartRepository       { return u.carts }
func (u *passthroughUnitOfWork) Products() repositories.ProductRepository { return u.products }

func TestCheckoutService_OrderWithoutIdentityFails(t *testing.T) {
	products := newStubProductRepository(models.Product{ID: "p1", Price: dec("10.00")})
	carts := repositories.NewMemoryCartRepository(products)
	assert.NoError(t, carts.Add("u1", "p1", 1))

	orders := new(mockOrderRepository)
	// Create reports success but leaves order.ID empty.
	orders.On("Create", mock.Anything).Return(nil)

	users := new(MockUserRepository)
	users.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	profiles := new(MockProfileRepository)
	profiles.On("GetByUserID", "u1").Return(nil, fmt.Errorf("profile for user u1: %w", repositories.ErrNotFound))

	uow := &passthroughUnitOfWork{orders: orders, carts: carts, products: products}
	service := services.NewCheckoutService(uow, users, profiles, orders, nil)

	order, err := service.Checkout("u1")
	assert.ErrorIs(t, err, services.ErrOrderNotCreated)
	assert.Nil(t, order)
	orders.AssertNotCalled(t, "AddLineItem", mock.Anything)
}

func TestBuildShippingAddress(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
		want    string
	}{
		{
			"full address",
			&models.Profile{Address: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
			"123 Main St, Springfield, IL 62704",
		},
		{
			"city and zip only",
			&models.Profile{City: "Springfield", Zip: "00000"},
			"Springfield 00000",
		},
		{
			"address only",
			&models.Profile{Address: "123 Main St"},
			"123 Main St",
		},
		{
			"zip only",
			&models.Profile{Zip: "62704"},
			"62704",
		},
		{"all fields empty", &models.Profile{}, services.NoAddressOnFile},
		{"no profile", nil, services.NoAddressOnFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.BuildShippingAddress(tt.profile))
		})
	}
}
