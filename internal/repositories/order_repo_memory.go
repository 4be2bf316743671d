package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders    map[string]models.Order
	lineItems map[string][]models.OrderLineItem // orderID -> items
	mu        sync.RWMutex

	// FailAddLineItem, when non-nil, is returned by the next AddLineItem
	// call and then cleared. Used to simulate a mid-transaction storage
	// failure.
	FailAddLineItem error
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:    make(map[string]models.Order),
		lineItems: make(map[string][]models.OrderLineItem),
	}
}

// Create adds a new order, assigning an ID when absent.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	stored := *order
	stored.LineItems = nil
	r.orders[order.ID] = stored
	return nil
}

// AddLineItem appends a line item to an existing order.
func (r *MemoryOrderRepository) AddLineItem(item *models.OrderLineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailAddLineItem != nil {
		err := r.FailAddLineItem
		r.FailAddLineItem = nil
		return err
	}

	if _, ok := r.orders[item.OrderID]; !ok {
		return fmt.Errorf("order with ID %s: %w", item.OrderID, ErrNotFound)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.lineItems[item.OrderID] = append(r.lineItems[item.OrderID], *item)
	return nil
}

// GetByID returns an order with its line items attached.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.LineItems = append([]models.OrderLineItem(nil), r.lineItems[id]...)
	return &order, nil
}

// GetByUserID returns a user's orders, newest first.
func (r *MemoryOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for id, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		order.LineItems = append([]models.OrderLineItem(nil), r.lineItems[id]...)
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

// Count returns the number of stored orders.
func (r *MemoryOrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders)
}

type memoryOrderSnapshot struct {
	orders    map[string]models.Order
	lineItems map[string][]models.OrderLineItem
}

func (r *MemoryOrderRepository) snapshot() memoryOrderSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := memoryOrderSnapshot{
		orders:    make(map[string]models.Order, len(r.orders)),
		lineItems: make(map[string][]models.OrderLineItem, len(r.lineItems)),
	}
	for id, order := range r.orders {
		snap.orders[id] = order
	}
	for id, items := range r.lineItems {
		snap.lineItems[id] = append([]models.OrderLineItem(nil), items...)
	}
	return snap
}

func (r *MemoryOrderRepository) restore(snap memoryOrderSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = snap.orders
	r.lineItems = snap.lineItems
}
