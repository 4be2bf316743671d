package repositories

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartRepository defines the interface for shopping cart data access.
// Every operation is keyed by (user, product); Clear removes all of a
// user's rows as a single all-or-nothing statement.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	// GetByUserIDForUpdate reads the cart while locking its rows for the
	// duration of the surrounding transaction, so two checkouts of the same
	// cart cannot interleave.
	GetByUserIDForUpdate(userID string) (*models.Cart, error)
	Exists(userID, productID string) (bool, error)
	Add(userID, productID string, quantity int) error
	IncrementQuantity(userID, productID string) error
	UpdateQuantity(userID, productID string, quantity int, discountPercent decimal.Decimal) error
	Delete(userID, productID string) error
	Clear(userID string) error
}
