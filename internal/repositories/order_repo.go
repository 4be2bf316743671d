package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
// Create must leave order.ID populated on success; a create that "succeeds"
// without assigning an identity is treated as a failure by callers.
type OrderRepository interface {
	Create(order *models.Order) error
	AddLineItem(item *models.OrderLineItem) error
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
}
