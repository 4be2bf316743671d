package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartService handles business logic for the shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves the user's cart. A user who has never added anything
// gets an empty cart.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	return s.cartRepo.GetByUserID(userID)
}

// AddProduct puts one unit of a product into the cart. Adding a product
// that is already present increments its quantity instead of inserting a
// second row.
func (s *CartService) AddProduct(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}

	exists, err := s.cartRepo.Exists(userID, productID)
	if err != nil {
		return fmt.Errorf("failed to check cart: %w", err)
	}
	if exists {
		return s.cartRepo.IncrementQuantity(userID, productID)
	}
	return s.cartRepo.Add(userID, productID, 1)
}

// UpdateProduct sets the quantity and discount of a product already in the
// cart. The discount is normalized into [0, 100]; a zero quantity removes
// the row.
func (s *CartService) UpdateProduct(userID, productID string, quantity int, discountPercent decimal.Decimal) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if quantity == 0 {
		return s.cartRepo.Delete(userID, productID)
	}
	return s.cartRepo.UpdateQuantity(userID, productID, quantity, models.NormalizeDiscount(discountPercent))
}

// RemoveProduct deletes a single product from the cart.
func (s *CartService) RemoveProduct(userID, productID string) error {
	return s.cartRepo.Delete(userID, productID)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.Clear(userID)
}
