package repositories

// RepositoryTx exposes the repositories bound to one in-flight transaction.
type RepositoryTx interface {
	Orders() OrderRepository
	Carts() CartRepository
	Products() ProductRepository
}

// UnitOfWork runs a function against transaction-bound repositories. Every
// write made inside fn is committed together, or rolled back together when
// fn returns an error. Checkout relies on this to keep the order, its line
// items, and the cart clear mutually consistent.
type UnitOfWork interface {
	Do(fn func(tx RepositoryTx) error) error
}
