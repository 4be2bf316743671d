package repositories

import (
	"fmt"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

func (r *GORMCartRepository) getByUserID(db *gorm.DB, userID string) (*models.Cart, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}

	cart := models.NewCart()
	for _, item := range items {
		item.DiscountPercent = models.NormalizeDiscount(item.DiscountPercent)
		cart.Items[item.ProductID] = item
	}
	return cart, nil
}

// GetByUserID retrieves a user's cart with the product snapshot attached to
// every item. A user with no rows gets an empty cart, not an error.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	return r.getByUserID(r.db, userID)
}

// GetByUserIDForUpdate is GetByUserID with SELECT ... FOR UPDATE semantics.
// Only meaningful inside a transaction.
func (r *GORMCartRepository) GetByUserIDForUpdate(userID string) (*models.Cart, error) {
	db := r.db
	// SQLite has no FOR UPDATE syntax; it serializes writers on its own.
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.getByUserID(db, userID)
}

// Exists reports whether the user already has the product in their cart.
func (r *GORMCartRepository) Exists(userID, productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check cart item existence: %w", err)
	}
	return count > 0, nil
}

// Add inserts a new cart row for the user with a zero discount.
func (r *GORMCartRepository) Add(userID, productID string, quantity int) error {
	item := models.CartItem{
		UserID:          userID,
		ProductID:       productID,
		Quantity:        quantity,
		DiscountPercent: decimal.Zero,
	}
	if err := r.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	return nil
}

// IncrementQuantity bumps the quantity of an existing cart row by one.
func (r *GORMCartRepository) IncrementQuantity(userID, productID string) error {
	res := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment cart item quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	return nil
}

// UpdateQuantity sets the quantity and discount of an existing cart row.
func (r *GORMCartRepository) UpdateQuantity(userID, productID string, quantity int, discountPercent decimal.Decimal) error {
	res := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"quantity":         quantity,
			"discount_percent": models.NormalizeDiscount(discountPercent),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	return nil
}

// Delete removes a single product from the user's cart.
func (r *GORMCartRepository) Delete(userID, productID string) error {
	res := r.db.Delete(&models.CartItem{}, "user_id = ? AND product_id = ?", userID, productID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item for user %s product %s: %w", userID, productID, ErrNotFound)
	}
	return nil
}

// Clear removes every cart row for the user in one statement.
func (r *GORMCartRepository) Clear(userID string) error {
	if err := r.db.Delete(&models.CartItem{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
