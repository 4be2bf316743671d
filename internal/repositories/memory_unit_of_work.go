package repositories

import "sync"

// MemoryUnitOfWork implements UnitOfWork over the in-memory repositories.
// It snapshots cart and order state before running fn and restores the
// snapshot when fn fails, giving tests real rollback behavior. The mutex
// also serializes units of work, standing in for database row locks.
type MemoryUnitOfWork struct {
	orders   *MemoryOrderRepository
	carts    *MemoryCartRepository
	products ProductRepository
	mu       sync.Mutex
}

// NewMemoryUnitOfWork creates a new instance of MemoryUnitOfWork.
func NewMemoryUnitOfWork(orders *MemoryOrderRepository, carts *MemoryCartRepository, products ProductRepository) *MemoryUnitOfWork {
	return &MemoryUnitOfWork{
		orders:   orders,
		carts:    carts,
		products: products,
	}
}

// Do runs fn against the shared in-memory stores, undoing every write when
// fn returns an error.
func (u *MemoryUnitOfWork) Do(fn func(tx RepositoryTx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	orderSnap := u.orders.snapshot()
	cartSnap := u.carts.snapshot()

	if err := fn(u); err != nil {
		u.orders.restore(orderSnap)
		u.carts.restore(cartSnap)
		return err
	}
	return nil
}

func (u *MemoryUnitOfWork) Orders() OrderRepository {
	return u.orders
}

func (u *MemoryUnitOfWork) Carts() CartRepository {
	return u.carts
}

func (u *MemoryUnitOfWork) Products() ProductRepository {
	return u.products
}
