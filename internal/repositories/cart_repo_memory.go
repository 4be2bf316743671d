package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryCartRepository is an in-memory implementation of CartRepository.
// Product snapshots on read come from the supplied ProductRepository, the
// same way the SQL implementation joins the products table.
type MemoryCartRepository struct {
	items    map[string]map[string]models.CartItem // userID -> productID -> item
	products ProductRepository
	mu       sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository(products ProductRepository) *MemoryCartRepository {
	return &MemoryCartRepository{
		items:    make(map[string]map[string]models.CartItem),
		products: products,
	}
}

// GetByUserID returns the user's cart with current product data attached.
func (r *MemoryCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart := models.NewCart()
	for productID, item := range r.items[userID] {
		if r.products != nil {
			product, err := r.products.GetByID(productID)
			if err == nil {
				item.Product = product
			}
		}
		item.DiscountPercent = models.NormalizeDiscount(item.DiscountPercent)
		cart.Items[productID] = item
	}
	return cart, nil
}

// GetByUserIDForUpdate behaves like GetByUserID; the in-memory store has no
// row locks, callers serialize through the unit of work instead.
func (r *MemoryCartRepository) GetByUserIDForUpdate(userID string) (*models.Cart, error) {
	return r.GetByUserID(userID)
}

// Exists reports whether the user already has the product in their cart.
func (r *MemoryCartRepository) Exists(userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[userID][productID]
	return ok, nil
}

// Add inserts a new cart row for the user with a zero discount.
func (r *MemoryCartRepository) Add(userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items[userID] == nil {
		r.items[userID] = make(map[string]models.CartItem)
	}
	r.items[userID][productID] = models.CartItem{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		DiscountPercent: decimal.Zero,
	}
	return nil
}

// IncrementQuantity bumps the quantity of an existing cart row by one.
func (r *MemoryCartRepository) IncrementQuantity(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID][productID]
	if !ok {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	item.Quantity++
	r.items[userID][productID] = item
	return nil
}

// UpdateQuantity sets the quantity and discount of an existing cart row.
func (r *MemoryCartRepository) UpdateQuantity(userID, productID string, quantity int, discountPercent decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[userID][productID]
	if !ok {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	item.Quantity = quantity
	item.DiscountPercent = models.NormalizeDiscount(discountPercent)
	r.items[userID][productID] = item
	return nil
}

// Delete removes a single product from the user's cart.
func (r *MemoryCartRepository) Delete(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[userID][productID]; !ok {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	delete(r.items[userID], productID)
	return nil
}

// Clear removes every cart row for the user.
func (r *MemoryCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

// snapshot and restore support transactional rollback in MemoryUnitOfWork.
func (r *MemoryCartRepository) snapshot() map[string]map[string]models.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]map[string]models.CartItem, len(r.items))
	for userID, items := range r.items {
		userItems := make(map[string]models.CartItem, len(items))
		for productID, item := range items {
			userItems[productID] = item
		}
		copied[userID] = userItems
	}
	return copied
}

func (r *MemoryCartRepository) restore(snap map[string]map[string]models.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = snap
}
