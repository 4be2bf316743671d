package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// NoAddressOnFile is the shipping address recorded when the user's profile
// is missing or has no address fields filled in.
const NoAddressOnFile = "No address on file"

// OrderEventPublisher publishes order lifecycle events to the message
// broker. Satisfied by *rabbitmq.Client.
type OrderEventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// CheckoutService converts a user's shopping cart into a durable order.
// All writes (order insert, line item inserts, cart clear) run inside one
// unit of work; a failure anywhere rolls everything back so the cart is
// never left partially cleared and an order never appears without its
// line items.
type CheckoutService struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	orderRepo   repositories.OrderRepository
	events      OrderEventPublisher

	// userLocks serializes checkouts per user so the same cart content can
	// never be spent into two orders, regardless of the store's locking.
	userLocks sync.Map // userID -> *sync.Mutex
}

// NewCheckoutService creates a new CheckoutService. events may be nil when
// no message broker is configured.
func NewCheckoutService(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	orderRepo repositories.OrderRepository,
	events OrderEventPublisher,
) *CheckoutService {
	return &CheckoutService{
		uow:         uow,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		orderRepo:   orderRepo,
		events:      events,
	}
}

func (s *CheckoutService) lockForUser(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Checkout turns the user's cart into an order.
//
// It fails with ErrEmptyCart when the cart has no items, and with a wrapped
// storage error when any write cannot complete; in that case no order, no
// line items, and no cart deletion are persisted. Each line item snapshots
// the current catalog price, not whatever was cached on the cart row.
func (s *CheckoutService) Checkout(userID string) (*models.Order, error) {
	lock := s.lockForUser(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	var order *models.Order
	err = s.uow.Do(func(tx repositories.RepositoryTx) error {
		cart, err := tx.Carts().GetByUserIDForUpdate(user.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		if cart.IsEmpty() {
			return ErrEmptyCart
		}

		// A missing profile is not an error here; the order just ships to
		// the placeholder address.
		profile, err := s.profileRepo.GetByUserID(user.ID)
		if err != nil {
			profile = nil
		}

		o := &models.Order{
			UserID:          user.ID,
			OrderDate:       time.Now(),
			ShippingAddress: BuildShippingAddress(profile),
			ShippingAmount:  decimal.Zero, // Flat zero until a shipping model exists
		}
		if err := tx.Orders().Create(o); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if o.ID == "" {
			return ErrOrderNotCreated
		}

		for productID, item := range cart.Items {
			product, err := tx.Products().GetByID(productID)
			if err != nil {
				return fmt.Errorf("failed to load product %s: %w", productID, err)
			}

			lineItem := models.OrderLineItem{
				OrderID:         o.ID,
				ProductID:       product.ID,
				SalesPrice:      product.Price,
				Quantity:        item.Quantity,
				DiscountPercent: models.NormalizeDiscount(item.DiscountPercent),
			}
			if err := tx.Orders().AddLineItem(&lineItem); err != nil {
				return fmt.Errorf("failed to add line item for product %s: %w", productID, err)
			}
			o.AddLineItem(lineItem)
		}

		if err := tx.Carts().Clear(user.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

// publishOrderCreated emits an order.created event after the transaction
// has committed. Publishing is best-effort; a broker failure never unwinds
// a committed order.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.events == nil {
		return
	}
	event := map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    order.UserID,
		"total":      order.Total(),
		"item_count": len(order.LineItems),
	}
	if err := s.events.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// GetOrdersForUser retrieves the user's order history.
func (s *CheckoutService) GetOrdersForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderForUser retrieves one of the user's orders by ID. Another user's
// order is reported as not found rather than forbidden, to avoid leaking
// which order IDs exist.
func (s *CheckoutService) GetOrderForUser(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order with ID %s: %w", orderID, repositories.ErrNotFound)
	}
	return order, nil
}

// BuildShippingAddress flattens a profile into a single shipping address
// line: address, city and state joined by ", ", then a single space before
// the zip. Empty components are skipped entirely; a nil or all-empty
// profile yields the placeholder.
func BuildShippingAddress(profile *models.Profile) string {
	if profile == nil {
		return NoAddressOnFile
	}

	var b strings.Builder
	for _, part := range []string{profile.Address, profile.City, profile.State} {
		if part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(part)
	}
	if profile.Zip != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(profile.Zip)
	}

	if b.Len() == 0 {
		return NoAddressOnFile
	}
	return b.String()
}
